package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/plantops/attendance-backend-go/internal/config"
	appHTTP "github.com/plantops/attendance-backend-go/internal/handler/http"
	"github.com/plantops/attendance-backend-go/internal/pkg/cron"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
	"github.com/plantops/attendance-backend-go/internal/pkg/jwt"
	"github.com/plantops/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/plantops/attendance-backend-go/internal/service/attendance"
	authService "github.com/plantops/attendance-backend-go/internal/service/auth"
	directoryService "github.com/plantops/attendance-backend-go/internal/service/directory"
	leaveService "github.com/plantops/attendance-backend-go/internal/service/leave"
	overtimeService "github.com/plantops/attendance-backend-go/internal/service/overtime"
	payrollService "github.com/plantops/attendance-backend-go/internal/service/payroll"
	suggestionService "github.com/plantops/attendance-backend-go/internal/service/suggestion"
	ticketService "github.com/plantops/attendance-backend-go/internal/service/ticket"
	tripService "github.com/plantops/attendance-backend-go/internal/service/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Pool.Close()

	// schema before traffic
	if err := postgresql.Migrate(context.Background(), db); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	tripRequestRepo := postgresql.NewTripRequestRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	punchRepo := postgresql.NewPunchRecordRepository(db)
	suggestionRepo := postgresql.NewSuggestionRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	directorySvc := directoryService.NewDirectoryService(employeeRepo)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	leaveSvc := leaveService.NewRequestService(txRunner, leaveRequestRepo, ticketRepo, directorySvc)
	overtimeSvc := overtimeService.NewRequestService(txRunner, overtimeRequestRepo, ticketRepo, punchRepo, settingsRepo, directorySvc)
	tripSvc := tripService.NewRequestService(tripRequestRepo, directorySvc)
	suggestionSvc := suggestionService.NewService(punchRepo, suggestionRepo, holidayRepo,
		overtimeRequestRepo, leaveRequestRepo, tripRequestRepo, settingsRepo, directorySvc)
	ingestSvc := attendanceService.NewIngestService(punchRepo, settingsRepo, suggestionSvc)
	ticketSvc := ticketService.NewLedgerService(ticketRepo)
	payrollSvc := payrollService.NewPayService(overtimeRequestRepo, holidayRepo, settingsRepo)

	sweepInterval, err := time.ParseDuration(cfg.Jobs.TicketSweepInterval)
	if err != nil {
		log.Fatal("Invalid TICKET_SWEEP_INTERVAL: ", err)
	}
	retention, err := time.ParseDuration(cfg.Jobs.TicketRetention)
	if err != nil {
		log.Fatal("Invalid TICKET_RETENTION: ", err)
	}

	scheduler := cron.NewScheduler()
	scheduler.AddJob(cron.Job{
		Name:     "expired-ticket-sweep",
		Interval: sweepInterval,
		Timeout:  5 * time.Minute,
		Fn: func(ctx context.Context) error {
			removed, err := ticketSvc.PurgeExpired(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if removed > 0 {
				slog.Info("Swept expired exchange tickets", "removed", removed)
			}
			return nil
		},
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(directorySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Trip:       appHTTP.NewTripHandler(tripSvc),
		Attendance: appHTTP.NewAttendanceHandler(ingestSvc, suggestionSvc),
		Ticket:     appHTTP.NewTicketHandler(ticketSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidayRepo),
		Settings:   appHTTP.NewSettingsHandler(settingsRepo),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server listening", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
