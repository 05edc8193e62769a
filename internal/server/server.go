package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"traceable-link/internal/auth"
	"traceable-link/internal/clicklog"
	"traceable-link/internal/config"
	"traceable-link/internal/data"
	"traceable-link/internal/jobs"
	"traceable-link/internal/metrics"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/version"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	logCloser   io.Closer
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	dispatcher  *clicklog.Dispatcher
	clickCache  middlewares.ClickCache
	redisClient *redis.Client
	jobManager  *jobs.JobManager
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger, logCloser, err := setupLogger(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.UsesInsecureSessionSecret() {
		logger.Warn("SESSION_SECRET is not set, using the insecure default secret")
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		cancel:    cancel,
	}

	if err := s.setup(ctx); err != nil {
		s.release()
		cancel()
		return nil, err
	}

	return s, nil
}

func (s *Server) setup(ctx context.Context) error {
	cfg := s.cfg
	logger := s.logger

	var sessionClient *redis.Client
	if cfg.Sessions.Store == "redis" {
		client, err := s.connectRedis(ctx, "sessions", cfg.Redis.SessionIndex)
		if err != nil {
			return err
		}
		sessionClient = client
		s.redisClient = client
	}

	sessionManager, err := auth.NewSessionManager(logger, cfg, sessionClient)
	if err != nil {
		return err
	}

	oauthProvider, err := auth.NewOAuthProvider(ctx, cfg.OAuth)
	if err != nil {
		logger.Error("failed to initialize identity provider", "issuer", cfg.OAuth.IssuerURL, "error", err)
		return err
	}

	var clickClient *redis.Client
	if cfg.ClickLog.HasSink(config.SinkRedis) {
		clickClient, err = s.connectRedis(ctx, "clicks", cfg.Redis.ClickIndex)
		if err != nil {
			return err
		}
	}

	sinks, err := clicklog.NewSinks(ctx, cfg, logger, clickClient)
	if err != nil {
		if clickClient != nil {
			_ = clickClient.Close()
		}
		logger.Error("failed to initialize click sinks", "error", err)
		return err
	}
	s.dispatcher = clicklog.NewDispatcher(logger, cfg.ClickLog.BufferSize, sinks...)

	var cacheClient *redis.Client
	if cfg.Tracking.DedupWindow > 0 && cfg.Tracking.DedupCache == "redis" {
		cacheClient, err = s.connectRedis(ctx, "cache", cfg.Redis.CacheIndex)
		if err != nil {
			return err
		}
	}

	clickCache, err := data.NewClickCache(cfg, logger, cacheClient)
	if err != nil {
		if cacheClient != nil {
			_ = cacheClient.Close()
		}
		return err
	}
	s.clickCache = clickCache

	s.appCtx = middlewares.NewAppContext(ctx, cfg, logger, sessionManager, oauthProvider, s.dispatcher, clickCache)

	s.jobManager = jobs.NewJobManager(logger)
	s.jobManager.Register(jobs.NewClickDispatchJob(s.dispatcher, logger))
	if memCache, ok := clickCache.(*data.MemClickCache); ok {
		s.jobManager.Register(jobs.NewClickCacheSweepJob(memCache, calculateSweepInterval(cfg.Tracking.DedupWindow), logger))
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: setupRouter(s.appCtx),
	}

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		s.debugServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler: setupDebugRouter(),
		}
	}

	return nil
}

// connectRedis opens a client on the given database index and exposes its pool stats when the debug server is on.
func (s *Server) connectRedis(ctx context.Context, name string, db int) (*redis.Client, error) {
	client, err := data.ConnectRedis(ctx, s.logger, s.cfg.Redis, db)
	if err != nil {
		s.logger.Error("failed to connect to redis", "client", name, "db", db, "error", err)
		return nil, err
	}

	if s.cfg.Server.Debug != nil && s.cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, name, client)
		if err := prometheus.Register(collector); err != nil {
			s.logger.Debug("failed to register redis collector: already registered", "client", name, "error", err)
		}
	}

	return client, nil
}

func (s *Server) Start() error {
	s.jobManager.Start(s.appCtx)

	go func() {
		s.logger.Info("Server Started", append([]any{"port", s.cfg.Server.Port}, version.LogAttrs()...)...)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		shutdownErr = err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	// stopping the dispatch job drains buffered clicks into the sinks
	if err := s.jobManager.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Click events may have been lost during shutdown", "pending", s.dispatcher.Pending())
	}

	s.cancel()
	s.release()

	s.logger.Info("Server Exited")
	return shutdownErr
}

// release closes everything New opened. Safe to call on a partially built server.
func (s *Server) release() {
	if s.dispatcher != nil {
		if err := s.dispatcher.Close(); err != nil {
			s.logger.Error("failed to close click dispatcher", "error", err)
		}
	}

	if closer, ok := s.clickCache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error("failed to close click cache", "error", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("failed to close redis client", "error", err)
		}
	}

	if s.logCloser != nil {
		_ = s.logCloser.Close()
	}
}

// calculateSweepInterval determines how often expired click fingerprints are evicted, following the dedup window but never more often than every 30 seconds.
func calculateSweepInterval(window time.Duration) time.Duration {
	if window < 30*time.Second {
		return 30 * time.Second
	}
	return window
}
