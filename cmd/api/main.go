package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "microquiz/internal/adapters/http"
	"microquiz/internal/adapters/http/handlers"
	"microquiz/internal/adapters/messaging"
	"microquiz/internal/adapters/persistence"
	"microquiz/internal/adapters/security"
	"microquiz/internal/adapters/websocket"
	"microquiz/internal/application/usecases"
	"microquiz/internal/infra/config"
	infraDB "microquiz/internal/infra/db"
	"microquiz/internal/infra/logger"
	"microquiz/internal/ports"

	"github.com/redis/go-redis/v9"
)

// @title MicroQuiz API
// @version 1.0
// @description Catálogo de quizzes e sessões de resposta com feedback imediato.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Logger
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Error("Configuração inválida", "erro", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	// 2. Banco de Dados
	db, err := infraDB.NewSQLiteConnection(cfg.Database.DSN)
	if err != nil {
		logger.Error("Não foi possível conectar ao banco", "erro", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := infraDB.RunMigrations(db); err != nil {
		logger.Error("Falha na migração", "erro", err)
		os.Exit(1)
	}

	// 3a. Adapters (Driven - Persistence)
	var catalogRepo ports.CatalogRepository = persistence.NewSQLiteCatalogRepository(db)
	if rdb := connectRedis(cfg.Redis); rdb != nil {
		defer rdb.Close()
		catalogRepo = persistence.NewRedisCachedCatalog(catalogRepo, rdb, cfg.Redis.CacheTTL)
	}
	sessionRepo := persistence.NewInMemorySessionRepository()

	// 3b. Adapters (Driven - Mensageria)
	var publisher ports.ResultPublisher = messaging.NewLogResultPublisher()
	if cfg.AMQP.URL != "" {
		rabbit, err := messaging.NewRabbitResultPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Warn("RabbitMQ indisponível, resultados só no log", "erro", err)
		} else {
			defer rabbit.Close()
			publisher = rabbit
		}
	}

	tokenService := security.NewJWTService(cfg.Session.Secret, cfg.Session.TokenTTL)

	// 3c. Adapters (Driving - WebSocket Hub)
	wsHub := websocket.NewHub()
	// Inicia o Hub em background
	go wsHub.Run()

	// 4. Application (Use Cases)
	catalogUC := usecases.NewCatalogUseCases(catalogRepo)
	sessionUC := usecases.NewSessionUseCases(
		sessionRepo,
		catalogRepo,
		wsHub,
		publisher,
		tokenService,
		cfg.Session.FeedbackDelay,
	)

	// 5. Adapters (Driving - Handlers)
	catalogHandler := handlers.NewCatalogHandler(catalogUC)
	sessionHandler := handlers.NewSessionHandler(sessionUC)
	wsHandler := websocket.NewWebSocketHandler(wsHub, sessionUC)

	// 6. Router
	router := httpadapter.NewRouter(
		catalogHandler,
		sessionHandler,
		wsHandler,
		sessionUC,
		cfg.AllowedOrigins,
	)

	// 7. Servidor
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessões com token expirado saem da memória
	go sessionUC.RunJanitor(ctx, time.Minute)

	go func() {
		logger.Info("Iniciando servidor", "porta", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Falha no servidor HTTP", "erro", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro no encerramento", "erro", err)
	}
}

// connectRedis devolve nil quando o cache está desligado ou o Redis não responde.
func connectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis indisponível, catálogo sem cache", "addr", cfg.Addr, "erro", err)
		rdb.Close()
		return nil
	}

	logger.Info("Cache do catálogo ativo", "addr", cfg.Addr, "ttl", cfg.CacheTTL)
	return rdb
}
