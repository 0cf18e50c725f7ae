package worker

import "context"

// WorkerService defines business logic for the laborer directory
type WorkerService interface {
	CreateWorker(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetWorker(ctx context.Context, companyID string, id string) (WorkerResponse, error)
	ListActiveWorkers(ctx context.Context, companyID string) ([]WorkerResponse, error)
	UpdateWorker(ctx context.Context, companyID string, req UpdateWorkerRequest) (WorkerResponse, error)
}
