package worker

import (
	"context"
	"fmt"

	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	workerRepo worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, companyID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w := worker.Worker{
		CompanyID: companyID,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Phone:     req.Phone,
		Trade:     req.Trade,
		DailyRate: req.DailyRate,
		IsActive:  true,
	}

	created, err := s.workerRepo.Create(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return mapWorkerResponse(created), nil
}

func (s *WorkerServiceImpl) GetWorker(ctx context.Context, companyID string, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return mapWorkerResponse(w), nil
}

func (s *WorkerServiceImpl) ListActiveWorkers(ctx context.Context, companyID string) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, mapWorkerResponse(w))
	}
	return responses, nil
}

func (s *WorkerServiceImpl) UpdateWorker(ctx context.Context, companyID string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.ID, companyID); err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := s.workerRepo.Update(ctx, companyID, req); err != nil {
		return worker.WorkerResponse{}, err
	}

	updated, err := s.workerRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return mapWorkerResponse(updated), nil
}

func mapWorkerResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		ProjectID:   w.ProjectID,
		ProjectName: w.ProjectName,
		Name:        w.Name,
		Phone:       w.Phone,
		Trade:       w.Trade,
		DailyRate:   w.DailyRate,
		IsActive:    w.IsActive,
	}
}
