package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plantops/attendance-backend-go/internal/config"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Trip       TripHandler
	Attendance AttendanceHandler
	Ticket     TicketHandler
	Payroll    PayrollHandler
	Holiday    HolidayHandler
	Settings   SettingsHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(httprate.LimitByIP(cfg.App.RateLimit, 1*time.Minute))
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Terminate)
				r.Get("/my/approvers", h.Employee.MyApprovers)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Get("/pending", h.Leave.PendingQueue)
				r.Post("/approve", h.Leave.Approve)
				r.Post("/reject", h.Leave.Reject)
				r.Post("/batch-approve", h.Leave.BatchApprove)
				r.Post("/delete", h.Leave.Delete)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", h.Overtime.Register)
				r.Get("/my", h.Overtime.GetMyRequests)
				r.Get("/pending", h.Overtime.PendingQueue)
				r.Post("/approve", h.Overtime.Approve)
				r.Post("/reject", h.Overtime.Reject)
				r.Post("/batch-approve", h.Overtime.BatchApprove)
				r.Post("/validate-batch", h.Overtime.ValidateBatch)
				r.Post("/delete", h.Overtime.Delete)
			})

			r.Route("/business-trips", func(r chi.Router) {
				r.Post("/", h.Trip.Apply)
				r.Get("/my", h.Trip.GetMyRequests)
				r.Get("/pending", h.Trip.PendingQueue)
				r.Post("/approve", h.Trip.Approve)
				r.Post("/reject", h.Trip.Reject)
				r.Post("/batch-approve", h.Trip.BatchApprove)
				r.Post("/return", h.Trip.RegisterReturn)
				r.Post("/delete", h.Trip.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punches", h.Attendance.UploadPunches)
				r.Get("/suggestions/my", h.Attendance.MySuggestions)
				r.Get("/exceptions", h.Attendance.Exceptions)
			})

			r.Get("/tickets/my", h.Ticket.MyBalance)
			r.Get("/payroll/overtime", h.Payroll.MonthlyOvertimePay)
			r.Get("/holidays", h.Holiday.List)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.Put("/", h.Settings.Update)
			})
		})
	})
	return r
}
