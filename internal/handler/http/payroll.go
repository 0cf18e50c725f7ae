package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/setting"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
	"github.com/sitecrew/workforce-backend-go/internal/service/settings"
)

type PayrollHandler interface {
	// Periods
	PreviewPeriods(w http.ResponseWriter, r *http.Request)
	CurrentPeriod(w http.ResponseWriter, r *http.Request)
	NextPeriod(w http.ResponseWriter, r *http.Request)

	// Runs
	CreateRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	CalculateRun(w http.ResponseWriter, r *http.Request)
	ApproveRun(w http.ResponseWriter, r *http.Request)
	PayRun(w http.ResponseWriter, r *http.Request)
	DeleteRun(w http.ResponseWriter, r *http.Request)
	GetRunSummary(w http.ResponseWriter, r *http.Request)

	// Entries
	GetEntry(w http.ResponseWriter, r *http.Request)
	CalculateWorkerPayroll(w http.ResponseWriter, r *http.Request)

	// Settings
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	ListSettingOverrides(w http.ResponseWriter, r *http.Request)
	DeleteSettingOverride(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	resolver       *settings.Resolver
}

func NewPayrollHandler(payrollService payroll.PayrollService, resolver *settings.Resolver) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, resolver: resolver}
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) PreviewPeriods(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rangeStart, _ := time.Parse("2006-01-02", req.RangeStart)
	rangeEnd, _ := time.Parse("2006-01-02", req.RangeEnd)

	periods, err := h.payrollService.GeneratePeriods(req.Config, rangeStart, rangeEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, payroll.PeriodResponse{
			Start: p.Start.Format("2006-01-02"),
			End:   p.End.Format("2006-01-02"),
		})
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CurrentPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.payrollService.CurrentPeriod(periodConfigFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.PeriodResponse{
		Start: period.Start.Format("2006-01-02"),
		End:   period.End.Format("2006-01-02"),
	})
}

func (h *payrollHandlerImpl) NextPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.payrollService.NextPeriod(periodConfigFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.PeriodResponse{
		Start: period.Start.Format("2006-01-02"),
		End:   period.End.Format("2006-01-02"),
	})
}

// periodConfigFromQuery builds a period config from query parameters,
// falling back to the company default type when none is given.
func periodConfigFromQuery(r *http.Request) payroll.PeriodConfig {
	cfg := payroll.PeriodConfig{
		Type: payroll.PeriodType(r.URL.Query().Get("type")),
	}
	if cfg.Type == "" {
		cfg.Type = payroll.PeriodWeekly
	}

	switch cfg.Type {
	case payroll.PeriodWeekly:
		cfg.Weekly = &payroll.WeeklyParams{WeekStartDay: r.URL.Query().Get("week_start_day")}
	case payroll.PeriodBiWeekly:
		cfg.BiWeekly = &payroll.BiWeeklyParams{BaseDate: r.URL.Query().Get("base_date")}
	case payroll.PeriodMonthly:
		day := 0
		if dayStr := r.URL.Query().Get("day_of_month"); dayStr != "" {
			day, _ = strconv.Atoi(dayStr)
		}
		cfg.Monthly = &payroll.MonthlyParams{DayOfMonth: day}
	case payroll.PeriodCustom:
		interval := 0
		if intervalStr := r.URL.Query().Get("interval_days"); intervalStr != "" {
			interval, _ = strconv.Atoi(intervalStr)
		}
		cfg.Custom = &payroll.CustomParams{IntervalDays: interval}
	}

	return cfg
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateRun(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created", result)
}

func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	filter := payroll.RunFilter{Page: 1, Limit: 20}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.payrollService.ListRuns(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CalculateRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.CalculateRun(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run calculated", result)
}

func (h *payrollHandlerImpl) ApproveRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	approverID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.ApproveRun(r.Context(), companyID, id, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run approved", result)
}

func (h *payrollHandlerImpl) PayRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.MarkRunPaid(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run marked as paid", result)
}

func (h *payrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	if err := h.payrollService.DeleteRun(r.Context(), companyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted", nil)
}

func (h *payrollHandlerImpl) GetRunSummary(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Run ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.GetRunSummary(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ENTRIES ==========

func (h *payrollHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Entry ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.GetEntry(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CalculateWorkerPayroll(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	workerID, ok := uuidParam(r, "id")
	if !ok {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.payrollService.CalculateWorkerPayroll(r.Context(), companyID, workerID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SETTINGS ==========

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	snapshot, err := h.resolver.Snapshot(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payroll.CalcSettingsResponse{
		OvertimeMultiplier:     snapshot.OvertimeMultiplier,
		DailyOvertimeThreshold: snapshot.DailyOvertimeThreshold,
		StandardWorkdayHours:   snapshot.StandardWorkdayHours,
		RoundingPrecision:      snapshot.RoundingPrecision,
		DefaultPeriodType:      string(snapshot.DefaultPeriodType),
		ThresholdPolicy:        string(snapshot.ThresholdPolicy),
	})
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req payroll.UpdateCalcSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.resolver.UpdateCalcSettings(r.Context(), companyID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.resolver.Snapshot(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll settings updated", payroll.CalcSettingsResponse{
		OvertimeMultiplier:     snapshot.OvertimeMultiplier,
		DailyOvertimeThreshold: snapshot.DailyOvertimeThreshold,
		StandardWorkdayHours:   snapshot.StandardWorkdayHours,
		RoundingPrecision:      snapshot.RoundingPrecision,
		DefaultPeriodType:      string(snapshot.DefaultPeriodType),
		ThresholdPolicy:        string(snapshot.ThresholdPolicy),
	})
}

// ListSettingOverrides returns only the values stored for the company, i.e.
// the keys that shadow the environment defaults.
func (h *payrollHandlerImpl) ListSettingOverrides(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	overrides, err := h.resolver.Overrides(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]setting.SettingResponse, 0, len(overrides))
	for _, s := range overrides {
		result = append(result, setting.MapSettingResponse(s))
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteSettingOverride(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		response.BadRequest(w, "Setting key is required", nil)
		return
	}

	if err := h.resolver.Clear(r.Context(), companyID, key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting override removed", nil)
}
