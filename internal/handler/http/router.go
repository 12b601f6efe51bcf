package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

// Login roles, lowercased.
const (
	roleAdmin   = "admin"
	roleHR      = "hr"
	roleManager = "manager"
)

// RouterConfig carries the settings the router needs from config.Config.
type RouterConfig struct {
	AllowedOrigins []string
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	store session.Store,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/app", func(r chi.Router) {
		r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwt.TokenFromCookie))
		r.Use(middleware.Session(JWTService, store, cfg.SessionTTL))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(middleware.SessionRequired).Get("/me", authHandler.Me)
		})

		// The stream authenticates with its own short-lived token.
		r.Get("/attendance/stream", attendanceHandler.Stream)

		// Requires a logged-in session
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.Board)
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/history", attendanceHandler.History)
				r.Get("/stream-token", attendanceHandler.GetSSEToken)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireRole(roleManager, roleHR, roleAdmin))
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{id}", employeeHandler.GetEmployee)

				// HR and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(roleHR, roleAdmin))
					r.Get("/new", employeeHandler.NewForm)
					r.Post("/check-department", employeeHandler.CheckDepartment)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Get("/{id}/edit", employeeHandler.EditForm)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Patch("/{id}/status", employeeHandler.SetStatus)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			// Settings pages, HR and admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(roleHR, roleAdmin))

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", masterHandler.ListDepartments)
					r.Post("/", masterHandler.CreateDepartment)
					r.Get("/{id}", masterHandler.GetDepartment)
					r.Put("/{id}", masterHandler.UpdateDepartment)
					r.Delete("/{id}", masterHandler.DeleteDepartment)
				})

				r.Route("/leave-types", func(r chi.Router) {
					r.Get("/", masterHandler.ListLeaveTypes)
					r.Post("/", masterHandler.CreateLeaveType)
					r.Get("/{id}", masterHandler.GetLeaveType)
					r.Put("/{id}", masterHandler.UpdateLeaveType)
					r.Delete("/{id}", masterHandler.DeleteLeaveType)
				})

				r.Route("/work-schedules", func(r chi.Router) {
					r.Get("/", masterHandler.ListWorkSchedules)
					r.Post("/", masterHandler.CreateWorkSchedule)
					r.Get("/{id}", masterHandler.GetWorkSchedule)
					r.Put("/{id}", masterHandler.UpdateWorkSchedule)
					r.Delete("/{id}", masterHandler.DeleteWorkSchedule)
				})

				r.Route("/catalog/{kind}", func(r chi.Router) {
					r.Get("/", masterHandler.ListCatalog)
					r.Post("/", masterHandler.CreateCatalogItem)
					r.Get("/{id}", masterHandler.GetCatalogItem)
					r.Put("/{id}", masterHandler.UpdateCatalogItem)
					r.Delete("/{id}", masterHandler.DeleteCatalogItem)
				})
			})
		})
	})
	return r
}
