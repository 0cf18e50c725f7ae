package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/middleware"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	workerHandler WorkerHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Post("/", workerHandler.Create)
				r.Get("/{id}", workerHandler.Get)
				r.Put("/{id}", workerHandler.Update)
				r.Get("/{id}/events", attendanceHandler.ListWorkerEvents)
				r.Get("/{id}/payroll", payrollHandler.CalculateWorkerPayroll)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/events/{id}", attendanceHandler.GetEvent)
				r.Put("/events/{id}", attendanceHandler.CorrectEvent)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/periods", func(r chi.Router) {
					r.Post("/preview", payrollHandler.PreviewPeriods)
					r.Get("/current", payrollHandler.CurrentPeriod)
					r.Get("/next", payrollHandler.NextPeriod)
				})

				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Post("/", payrollHandler.CreateRun)
					r.Get("/{id}", payrollHandler.GetRun)
					r.Delete("/{id}", payrollHandler.DeleteRun)
					r.Post("/{id}/calculate", payrollHandler.CalculateRun)
					r.Post("/{id}/approve", payrollHandler.ApproveRun)
					r.Post("/{id}/pay", payrollHandler.PayRun)
					r.Get("/{id}/summary", payrollHandler.GetRunSummary)
					r.Get("/{id}/export", reportHandler.ExportRun)
				})

				r.Route("/entries", func(r chi.Router) {
					r.Get("/{id}", payrollHandler.GetEntry)
					r.Get("/{id}/payslip", reportHandler.Payslip)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.Put("/", payrollHandler.UpdateSettings)
					r.Get("/overrides", payrollHandler.ListSettingOverrides)
					r.Delete("/overrides/{key}", payrollHandler.DeleteSettingOverride)
				})
			})
		})
	})
	return r
}
