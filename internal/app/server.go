// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"customer-lookup-service/internal/config"
	"customer-lookup-service/internal/db"
	customerHandler "customer-lookup-service/internal/handlers/customer"
	wsHandler "customer-lookup-service/internal/handlers/websocket"
	"customer-lookup-service/internal/middleware"
	"customer-lookup-service/internal/pkg/logger"
	"customer-lookup-service/internal/repository/source"
	"customer-lookup-service/internal/repository/sourcestore"
	"customer-lookup-service/internal/service/assistant"
	"customer-lookup-service/internal/service/ingestion"
	"customer-lookup-service/internal/service/session"
	ws "customer-lookup-service/internal/websocket"
	wsMessageHandler "customer-lookup-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	logger     *zap.Logger
	httpServer *http.Server
	redis      *redis.Client
	session    *session.Service
}

func NewServer(cfg config.AppConfig) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{
		Development: cfg.IsDevelopment(),
		File:        cfg.LogFile,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
		Compress:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	return &Server{
		cfg:        cfg,
		engine:     engine,
		logger:     log,
		httpServer: &http.Server{Addr: cfg.HTTPAddr, Handler: engine},
	}, nil
}

// Start wires every component, restores the last source and serves HTTP until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	// ----- Remembered source -----
	var memory session.SourceMemory = sourcestore.NewMemoryStore()
	if s.cfg.RedisAddr != "" {
		client, err := db.NewRedisClient(ctx, db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 4,
		})
		if err != nil {
			return err
		}
		s.redis = client
		memory = sourcestore.NewRedisStore(client, s.cfg.SourceMemoryTTL)
		s.logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))
	} else {
		s.logger.Warn("REDIS_ADDR not set, remembered source lasts only for this process")
	}

	// ----- Assistant -----
	var generator assistant.Generator
	if s.cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGeminiGenerator(ctx, s.cfg.GeminiAPIKey, s.cfg.GeminiModel)
		if err != nil {
			return err
		}
		generator = gemini
	} else {
		s.logger.Warn("GEMINI_API_KEY not set, assistant disabled")
	}

	// ----- Services -----
	fetcher := source.NewHTTPFetcher(s.cfg.FetchTimeout, s.cfg.MaxSourceBytes)
	pipeline := ingestion.NewPipeline(s.logger)
	s.session = session.NewService(fetcher, pipeline, memory, s.logger)
	assistantService := assistant.NewService(generator, s.logger)

	// ----- WebSocket hub -----
	hub := ws.NewHub(s.logger)
	hub.RegisterHandler(wsMessageHandler.NewSessionHandler(s.session))
	s.session.SetNotifier(hub)
	go hub.Run(ctx)

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler: customerHandler.NewCustomerHandler(s.session, assistantService, s.cfg.MaxSourceBytes, s.logger),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, s.session, s.cfg.CORSOrigins, s.logger),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(s.logger),
		middleware.RecoveryMiddleware(s.logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)
	s.engine.MaxMultipartMemory = s.cfg.MaxSourceBytes
	SetupRouter(s.engine, handlers)

	// ----- Restore last source -----
	go s.restore(ctx)

	// ----- Start HTTP -----
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) restore(ctx context.Context) {
	if err := s.session.Restore(ctx, s.cfg.SourceURL); err != nil {
		s.logger.Warn("failed to restore last source", zap.Error(err))
	}
}

// Shutdown stops accepting requests and releases Redis. Live sockets close
// when the context given to Start is cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.logger.Sync()

	err := s.httpServer.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Logger exposes the server logger to main.
func (s *Server) Logger() *zap.Logger {
	return s.logger
}
