package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
	seq     int
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]worker.Worker)}
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.seq++
	w.ID = fmt.Sprintf("w-%d", f.seq)
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string, companyID string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok || w.CompanyID != companyID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.CompanyID == companyID && w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) GetByIDs(_ context.Context, ids []string, companyID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, id := range ids {
		if w, err := f.GetByID(context.Background(), id, companyID); err == nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, companyID string, req worker.UpdateWorkerRequest) error {
	w, ok := f.workers[req.ID]
	if !ok || w.CompanyID != companyID {
		return worker.ErrWorkerNotFound
	}
	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.DailyRate != nil {
		w.DailyRate = req.DailyRate
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	f.workers[req.ID] = w
	return nil
}

func TestCreateWorker(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	rate := decimal.NewFromInt(160)
	created, err := svc.CreateWorker(context.Background(), "c1", worker.CreateWorkerRequest{
		Name:      "Budi",
		DailyRate: &rate,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "c1", created.CompanyID)
	assert.True(t, created.IsActive, "new workers start active")
	require.NotNil(t, created.DailyRate)
	assert.True(t, created.DailyRate.Equal(rate))
}

func TestCreateWorker_Validation(t *testing.T) {
	svc := NewWorkerService(newFakeWorkerRepo())

	negative := decimal.NewFromInt(-5)
	cases := []worker.CreateWorkerRequest{
		{},
		{Name: "   "},
		{Name: "Budi", DailyRate: &negative},
	}
	for _, req := range cases {
		_, err := svc.CreateWorker(context.Background(), "c1", req)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	}
}

func TestListActiveWorkers_ExcludesInactive(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	active, err := svc.CreateWorker(context.Background(), "c1", worker.CreateWorkerRequest{Name: "Budi"})
	require.NoError(t, err)
	deactivated, err := svc.CreateWorker(context.Background(), "c1", worker.CreateWorkerRequest{Name: "Sari"})
	require.NoError(t, err)
	_, err = svc.CreateWorker(context.Background(), "c2", worker.CreateWorkerRequest{Name: "Andi"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateWorker(context.Background(), "c1", worker.UpdateWorkerRequest{
		ID:       deactivated.ID,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	workers, err := svc.ListActiveWorkers(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, active.ID, workers[0].ID)
}

func TestUpdateWorker(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	created, err := svc.CreateWorker(context.Background(), "c1", worker.CreateWorkerRequest{Name: "Budi"})
	require.NoError(t, err)

	rate := decimal.NewFromFloat(187.5)
	updated, err := svc.UpdateWorker(context.Background(), "c1", worker.UpdateWorkerRequest{
		ID:        created.ID,
		DailyRate: &rate,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DailyRate)
	assert.True(t, updated.DailyRate.Equal(rate))
	assert.Equal(t, "Budi", updated.Name)
}

func TestUpdateWorker_CrossCompanyHidden(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)

	created, err := svc.CreateWorker(context.Background(), "c1", worker.CreateWorkerRequest{Name: "Budi"})
	require.NoError(t, err)

	name := "Mallory"
	_, err = svc.UpdateWorker(context.Background(), "c2", worker.UpdateWorkerRequest{
		ID:   created.ID,
		Name: &name,
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestGetWorker_NotFound(t *testing.T) {
	svc := NewWorkerService(newFakeWorkerRepo())

	_, err := svc.GetWorker(context.Background(), "c1", "ghost")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}
