package http

import (
	"encoding/json"
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
)

type WorkerHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{workerService: workerService}
}

func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.workerService.CreateWorker(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created", result)
}

func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}

	result, err := h.workerService.GetWorker(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.workerService.ListActiveWorkers(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}

	var req worker.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.workerService.UpdateWorker(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated", result)
}
