package main

import (
	"fmt"
	"net/http"

	"github.com/sitecrew/workforce-backend-go/internal/config"
	appHTTP "github.com/sitecrew/workforce-backend-go/internal/handler/http"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/database"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sitecrew/workforce-backend-go/internal/service/attendance"
	payrollService "github.com/sitecrew/workforce-backend-go/internal/service/payroll"
	reportService "github.com/sitecrew/workforce-backend-go/internal/service/report"
	"github.com/sitecrew/workforce-backend-go/internal/service/settings"
	workerService "github.com/sitecrew/workforce-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	resolver := settings.NewResolver(settingRepo, cfg.Payroll)
	periods := payrollService.NewPeriodGenerator()

	workerSvc := workerService.NewWorkerService(workerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, workerRepo, attendanceRepo, resolver, periods)
	reportSvc := reportService.NewReportService(payrollRepo, workerRepo)

	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, resolver)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtService,
		workerHandler,
		attendanceHandler,
		payrollHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
