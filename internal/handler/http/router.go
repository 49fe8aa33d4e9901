package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level

	// UploadsDir is served at /uploads when files are stored locally
	UploadsDir string

	// Authenticate places a user.Session on the request context
	Authenticate func(http.Handler) http.Handler
}

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Leave      LeaveHandler
	Payslip    PayslipHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-dashboard"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.Authenticate)

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Get("/attendance", h.Attendance.History)

				r.Route("/leaves", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewAll))
					r.Get("/", h.Leave.List)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{index}/status", h.Leave.UpdateStatus)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Delete("/{index}", h.Leave.Delete)
				})

				r.Route("/payslips", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayslipView))
					r.Get("/", h.Payslip.List)
					r.Get("/{month}", h.Payslip.Get)
					r.With(middleware.RequirePermission(user.PermissionPayslipGenerate)).Post("/", h.Payslip.Generate)
				})
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			// Own attendance
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/today", h.Attendance.Today)
				r.Get("/my", h.Attendance.MyHistory)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
				r.Post("/gate", h.Attendance.Evaluate)
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
			})

			// Manager views
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
				r.Get("/daily", h.Attendance.Daily)
				r.Get("/weekly", h.Attendance.Weekly)
				r.Get("/monthly", h.Attendance.Monthly)
				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/monthly/export", h.Attendance.ExportMonthly)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.Holiday.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionHolidayManage))
				r.Post("/", h.Holiday.Create)
				r.Delete("/{date}", h.Holiday.Delete)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.ListMine)
			r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Apply)
			r.With(middleware.RequireManager, middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/pending", h.Leave.Pending)
		})

		r.Get("/payslips/my", h.Payslip.ListMine)
	})
	return r
}
