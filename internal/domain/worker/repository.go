package worker

import "context"

// WorkerRepository defines data access methods for workers.
// All methods take companyID to prevent cross-company data access.
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string, companyID string) (Worker, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Worker, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Worker, error)
	Update(ctx context.Context, companyID string, req UpdateWorkerRequest) error
}
