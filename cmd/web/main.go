package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/hris-web-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-web-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-web-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-web-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hris-web-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hris-web-go/internal/service/employee"
	"github.com/cmlabs-hris/hris-web-go/internal/service/master"
)

// pagerCache exposes the list registry to the session purge job.
type pagerCache struct {
	*listquery.Registry
}

func (c pagerCache) Forget(sessionID string) {
	c.ForgetSession(sessionID)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-web"),
		slog.String("env", cfg.App.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store
	switch cfg.Session.Store {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgresql.EnsureSessionSchema(ctx, db); err != nil {
			slog.Error("Failed to prepare session table", "error", err)
			os.Exit(1)
		}
		store = postgresql.NewSessionRepository(db, session.NewSealer(cfg.Session.EncryptionKey))
	default:
		store = session.NewMemoryStore()
	}

	client := apiclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure)
	guard := inflight.NewGuard()
	hub := sse.NewHub()
	lists := listquery.NewRegistry(listquery.DefaultPerPage)

	departmentSvc := master.NewDepartmentService(client)
	leaveTypeSvc := master.NewLeaveTypeService(client)
	workScheduleSvc := master.NewWorkScheduleService(client)
	catalogSvc := master.NewCatalogService(client)
	authSvc := serviceAuth.NewAuthService(client, serviceAuth.Config{})
	attendanceSvc := attendanceService.NewAttendanceService(client, guard, hub, attendanceService.Config{
		Path:     cfg.Attendance.Path,
		Location: cfg.Location(),
	})
	employeeSvc := employeeService.NewEmployeeService(client, guard, departmentSvc, employeeService.Config{
		RedirectDelay: cfg.Employee.RedirectDelay,
	})

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, store, cfg.Session.TTL,
		hub.Disconnect,
		attendanceSvc.Forget,
		lists.ForgetSession,
	)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, JWTService, hub, lists)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, lists)
	masterHandler := appHTTP.NewMasterHandler(departmentSvc, leaveTypeSvc, workScheduleSvc, catalogSvc, lists)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			SessionTTL:     cfg.Session.TTL,
			Logger:         logger,
		},
		JWTService,
		store,
		authHandler,
		attendanceHandler,
		employeeHandler,
		masterHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(store, cfg.Session.PurgeInterval, attendanceSvc, pagerCache{lists}).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "upstream", cfg.Upstream.BaseURL, "session_store", cfg.Session.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
