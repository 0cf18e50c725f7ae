package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/worker"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

type fakeEventRepo struct {
	events []attendance.Event
	seq    int
}

func (f *fakeEventRepo) Create(_ context.Context, e attendance.Event) (attendance.Event, error) {
	f.seq++
	e.ID = fmt.Sprintf("ev-%d", f.seq)
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Event, error) {
	for _, e := range f.events {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (f *fakeEventRepo) ListByWorker(_ context.Context, companyID, workerID string, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if e.CompanyID == companyID && e.WorkerID == workerID &&
			!e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByCompany(_ context.Context, companyID string, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if e.CompanyID == companyID && !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, companyID string, req attendance.UpdateEventRequest) error {
	for i, e := range f.events {
		if e.ID == req.ID && e.CompanyID == companyID {
			if req.Timestamp != nil {
				ts, err := time.Parse(time.RFC3339, *req.Timestamp)
				if err != nil {
					return err
				}
				f.events[i].Timestamp = ts
			}
			if req.Latitude != nil {
				f.events[i].Latitude = req.Latitude
			}
			if req.Longitude != nil {
				f.events[i].Longitude = req.Longitude
			}
			f.events[i].RecordedBy = req.RecordedBy
			return nil
		}
	}
	return attendance.ErrEventNotFound
}

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.workers = append(f.workers, w)
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string, companyID string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id && w.CompanyID == companyID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
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

func (f *fakeWorkerRepo) Update(_ context.Context, _ string, _ worker.UpdateWorkerRequest) error {
	return nil
}

func newFixture() (attendance.AttendanceService, *fakeEventRepo, *fakeWorkerRepo) {
	eventRepo := &fakeEventRepo{}
	workerRepo := &fakeWorkerRepo{}
	return NewAttendanceService(eventRepo, workerRepo), eventRepo, workerRepo
}

func activeWorker(id string) worker.Worker {
	project := "p1"
	return worker.Worker{
		ID:        id,
		CompanyID: "c1",
		Name:      "Budi",
		ProjectID: &project,
		IsActive:  true,
	}
}

func TestClockIn_RecordsPunch(t *testing.T) {
	svc, _, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	result, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{
		WorkerID:  "w1",
		Timestamp: "2025-03-03T08:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "clock_in", result.Kind)
	assert.Equal(t, "2025-03-03T08:00:00Z", result.Timestamp)
	// worker's assigned project fills in when the punch names none
	require.NotNil(t, result.ProjectID)
	assert.Equal(t, "p1", *result.ProjectID)
}

func TestClockIn_ExplicitProjectWins(t *testing.T) {
	svc, _, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	other := "p2"
	result, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{
		WorkerID:  "w1",
		ProjectID: &other,
	})
	require.NoError(t, err)
	require.NotNil(t, result.ProjectID)
	assert.Equal(t, "p2", *result.ProjectID)
}

func TestClockIn_EmptyTimestampDefaultsToNow(t *testing.T) {
	svc, eventRepo, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	before := time.Now()
	_, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{WorkerID: "w1"})
	require.NoError(t, err)

	require.Len(t, eventRepo.events, 1)
	ts := eventRepo.events[0].Timestamp
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(time.Now()))
}

func TestClockIn_FractionalSecondsTimestampStored(t *testing.T) {
	svc, eventRepo, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	_, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{
		WorkerID:  "w1",
		Timestamp: "2025-03-03T08:00:00.123456789+07:00",
	})
	require.NoError(t, err)

	// the stored event carries the parsed instant, never a zero time
	require.Len(t, eventRepo.events, 1)
	want, parseErr := time.Parse(time.RFC3339Nano, "2025-03-03T08:00:00.123456789+07:00")
	require.NoError(t, parseErr)
	assert.True(t, eventRepo.events[0].Timestamp.Equal(want))
}

func TestClockIn_InactiveWorkerRejected(t *testing.T) {
	svc, _, workerRepo := newFixture()
	w := activeWorker("w1")
	w.IsActive = false
	workerRepo.workers = append(workerRepo.workers, w)

	_, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{WorkerID: "w1"})
	assert.ErrorIs(t, err, worker.ErrWorkerInactive)
}

func TestClockIn_UnknownWorker(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{WorkerID: "ghost"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestClockIn_ValidationFailures(t *testing.T) {
	svc, _, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	badLat := 95.0
	cases := []attendance.PunchRequest{
		{},
		{WorkerID: "w1", Timestamp: "2025-03-03 08:00"},
		{WorkerID: "w1", Latitude: &badLat},
	}
	for _, req := range cases {
		_, err := svc.ClockIn(context.Background(), "c1", req)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	}
}

func TestClockOut_RecordsKind(t *testing.T) {
	svc, eventRepo, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	_, err := svc.ClockOut(context.Background(), "c1", attendance.PunchRequest{
		WorkerID:  "w1",
		Timestamp: "2025-03-03T17:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, attendance.EventClockOut, eventRepo.events[0].Kind)
}

func TestListWorkerEvents_IncludesEndDate(t *testing.T) {
	svc, eventRepo, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	for _, ts := range []string{
		"2025-03-03T08:00:00Z",
		"2025-03-09T08:00:00Z", // the requested end date itself
		"2025-03-10T08:00:00Z", // past the window
	} {
		parsed, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
		eventRepo.events = append(eventRepo.events, attendance.Event{
			ID: "ev-" + ts, CompanyID: "c1", WorkerID: "w1",
			Kind: attendance.EventClockIn, Timestamp: parsed,
		})
	}

	events, err := svc.ListWorkerEvents(context.Background(), "c1", "w1",
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestCorrectEvent(t *testing.T) {
	svc, eventRepo, workerRepo := newFixture()
	workerRepo.workers = append(workerRepo.workers, activeWorker("w1"))

	created, err := svc.ClockIn(context.Background(), "c1", attendance.PunchRequest{
		WorkerID:  "w1",
		Timestamp: "2025-03-03T08:30:00Z",
	})
	require.NoError(t, err)

	fixed := "2025-03-03T08:00:00Z"
	supervisor := "sup-1"
	updated, err := svc.CorrectEvent(context.Background(), "c1", attendance.UpdateEventRequest{
		ID:         created.ID,
		Timestamp:  &fixed,
		RecordedBy: &supervisor,
	})
	require.NoError(t, err)
	assert.Equal(t, fixed, updated.Timestamp)
	require.NotNil(t, eventRepo.events[0].RecordedBy)
	assert.Equal(t, supervisor, *eventRepo.events[0].RecordedBy)
}

func TestCorrectEvent_UnknownEvent(t *testing.T) {
	svc, _, _ := newFixture()

	ts := "2025-03-03T08:00:00Z"
	_, err := svc.CorrectEvent(context.Background(), "c1", attendance.UpdateEventRequest{
		ID:        "ghost",
		Timestamp: &ts,
	})
	assert.ErrorIs(t, err, attendance.ErrEventNotFound)
}
