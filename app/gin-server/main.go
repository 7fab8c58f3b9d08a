package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/maplepath/api/config"
	"github.com/maplepath/api/internal/api/handlers"
	"github.com/maplepath/api/internal/api/middleware"
	"github.com/maplepath/api/internal/api/routes"
	"github.com/maplepath/api/internal/auth"
	"github.com/maplepath/api/internal/cache"
	"github.com/maplepath/api/internal/logger"
	"github.com/maplepath/api/internal/migrations"
	"github.com/maplepath/api/internal/providers/llm"
	"github.com/maplepath/api/internal/render"
	mongorepo "github.com/maplepath/api/internal/repositories/mongo"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/services"
	"github.com/maplepath/api/internal/storage"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.InitPostgres(cfg.PostgresURI); err != nil {
		return err
	}
	log.Info("PostgreSQL connected")
	sqlDB, err := config.PostgresDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.RunMigrations {
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return err
		}
	}

	checks := map[string]handlers.Check{"postgres": sqlDB.PingContext}

	var c cache.Cache
	if cfg.RedisAddr != "" {
		if err := config.InitRedis(cfg.RedisAddr); err != nil {
			return err
		}
		defer config.RedisClient.Close()
		log.Info("Redis connected")
		c = cache.NewRedisCache(config.RedisClient, "maplepath:")
		checks["redis"] = func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() }
	} else {
		log.Warn("REDIS_ADDR not set, using in-process cache")
		c = cache.NewMemoryCache()
	}

	var traces mongorepo.TraceRepository
	if cfg.MongoURI != "" {
		if err := config.InitMongo(cfg.MongoURI); err != nil {
			return err
		}
		defer config.MongoClient.Disconnect(context.Background())
		if err := config.EnsureMongoIndexes(cfg.MongoDB); err != nil {
			log.WithError(err).Warn("failed to ensure mongo indexes")
		}
		log.Info("MongoDB connected")
		traces = mongorepo.NewTraceRepo(config.MongoClient.Database(cfg.MongoDB), config.GenerationTraceCollection, mongorepo.DefaultTraceTTL)
		checks["mongo"] = func(ctx context.Context) error { return config.MongoClient.Ping(ctx, nil) }
	}

	var gcpOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		gcpOpts = append(gcpOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	provider, err := newProvider(ctx, cfg, gcpOpts, log)
	if err != nil {
		return err
	}
	if provider != nil {
		defer provider.Close()
	}

	renderer, err := render.NewRenderer(cfg.Renderer, cfg.ChromePath)
	if err != nil {
		return err
	}

	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		u, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSPublicRead, gcpOpts...)
		if err != nil {
			return err
		}
		defer u.Close()
		uploader = u
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	if err != nil {
		return err
	}
	var verifier auth.IdentityVerifier
	if cfg.FirebaseProjectID != "" {
		v, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, gcpOpts...)
		if err != nil {
			log.WithError(err).Warn("firebase unavailable, federated sign-in disabled")
		} else {
			verifier = v
		}
	}

	db := config.PostgresDB
	users := pgrepo.NewUserRepo(db)
	industries := pgrepo.NewIndustryRepo(db)

	authSvc := services.NewAuthService(users, tokens, verifier)
	userSvc := services.NewUserService(users)
	settleSvc := services.NewSettleService(pgrepo.NewRegionRepo(db), pgrepo.NewPurposeRepo(db), pgrepo.NewUserPurposeRepo(db))
	industrySvc := services.NewIndustryService(industries, c)
	cvSvc := services.NewCVService(services.CVDeps{
		CVs:        pgrepo.NewCVRepo(db),
		History:    pgrepo.NewHistoryRepo(db),
		Industries: industries,
		Generator:  services.NewResumeGenerator(provider, log),
		Renderer:   renderer,
		Uploader:   uploader,
		Traces:     traces,
		Log:        log,
	})

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log, "/ping", "/health"))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:           tokens,
		Health:           handlers.NewHealthHandler(checks),
		Auth:             handlers.NewAuthHandler(authSvc, userSvc),
		Users:            handlers.NewUserHandler(userSvc),
		Settle:           handlers.NewSettleHandler(settleSvc),
		Industry:         handlers.NewIndustryHandler(industrySvc),
		CV:               handlers.NewCVHandler(cvSvc),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newProvider returns nil when generation should always use fallback content.
func newProvider(ctx context.Context, cfg *config.Settings, opts []option.ClientOption, log logrus.FieldLogger) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case "none", "":
		log.Warn("no language model configured, CVs use fallback content")
		return nil, nil
	case "static":
		log.Warn("static language model configured, CVs use canned content")
		return llm.NewStatic(""), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, CVs use fallback content")
			return nil, nil
		}
		return llm.NewGoogleAI(ctx, cfg.GeminiAPIKey, cfg.VertexModel)
	case "vertex":
		if cfg.GCPProjectID == "" {
			log.Warn("GCP_PROJECT_ID not set, CVs use fallback content")
			return nil, nil
		}
		return llm.NewVertexGemini(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.VertexModel, opts...)
	}
	log.WithField("provider", cfg.LLMProvider).Warn("unknown LLM_PROVIDER, CVs use fallback content")
	return nil, nil
}
