package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	auth2 "gitlab.com/codbbit.net/internal/core/services/auth"
	"gitlab.com/codbbit.net/internal/core/services/catalog"
	"gitlab.com/codbbit.net/internal/core/services/connection"
	"gitlab.com/codbbit.net/internal/core/services/ranking"
	"gitlab.com/codbbit.net/internal/core/services/submission"
	"gitlab.com/codbbit.net/internal/handlers"
	"gitlab.com/codbbit.net/internal/handlers/auth"
	"gitlab.com/codbbit.net/internal/handlers/leaderboard"
	"gitlab.com/codbbit.net/internal/handlers/problems"
	"gitlab.com/codbbit.net/internal/handlers/submissions"
	"gitlab.com/codbbit.net/internal/handlers/users"
)

type ServiceProvider struct {
	localAuth      auth2.IAuthService
	connections    connection.IConnectionService
	submissionSvc  submission.ISubmissionService
	problemSvc     catalog.IProblemService
	rankingSvc     ranking.IRankingService
	userPort       secondary.UserPort
	jwtProvider    primary.JWTService
}

func NewServiceProvider(
	localAuth auth2.IAuthService,
	connections connection.IConnectionService,
	submissionSvc submission.ISubmissionService,
	problemSvc catalog.IProblemService,
	rankingSvc ranking.IRankingService,
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) *ServiceProvider {
	return &ServiceProvider{
		localAuth:     localAuth,
		connections:   connections,
		submissionSvc: submissionSvc,
		problemSvc:    problemSvc,
		rankingSvc:    rankingSvc,
		userPort:      userPort,
		jwtProvider:   jwtProvider,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	middleware := handlers.NewMiddleware(s.ServiceProvider.jwtProvider, s.ServiceProvider.userPort)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.JWTMiddleware)
	admin := protected.NewRoute().Subrouter()
	admin.Use(middleware.AdminOnly)

	auth.NewHandler(s.ServiceProvider.localAuth, s.ServiceProvider.connections, s.ServiceProvider.jwtProvider, s.logger).
		RegisterRoutes(r, protected)
	problems.NewHandler(s.ServiceProvider.problemSvc, s.logger).
		RegisterRoutes(r, admin)
	submissions.NewHandler(s.ServiceProvider.submissionSvc, s.ServiceProvider.problemSvc, s.logger).
		RegisterRoutes(protected)
	leaderboard.NewHandler(s.ServiceProvider.rankingSvc, s.logger).
		RegisterRoutes(r)
	users.NewHandler(s.ServiceProvider.userPort, s.ServiceProvider.rankingSvc, s.logger).
		RegisterRoutes(r)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
