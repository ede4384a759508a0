package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/httpapi"
	memactivityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/activityrepo"
	memidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/identityrepo"
	memobjectstore "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/objectstore"
	memrefdatarepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/refdatarepo"
	memsessionrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/sessionrepo"
	postgres "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres"
	pgactivityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/activityrepo"
	pgidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/identityrepo"
	pgrefdatarepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/refdatarepo"
	pgsessionrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/sessionrepo"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
	"github.com/hobbyhub-app/hobby-directory-api/internal/events"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/tokens"
	platformclock "github.com/hobbyhub-app/hobby-directory-api/internal/platform/clock"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/config"
	activityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
	identityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
	refdatarepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
	sessionrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	clk := platformclock.NewSystemClock()

	var (
		identityRepo identityrepoport.Repository
		activityRepo activityrepoport.Repository
		sessionRepo  sessionrepoport.Repository
		refdataRepo  refdatarepoport.Repository
		cleanup      func()
	)

	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close

		identityRepo = pgidentityrepo.NewRepo(pool)
		activityRepo = pgactivityrepo.NewRepo(pool)
		sessionRepo = pgsessionrepo.NewRepo(pool)
		refdataRepo = pgrefdatarepo.NewRepo(pool)
	default:
		identityRepo = memidentityrepo.NewRepo()
		activityRepo = memactivityrepo.NewRepo()
		sessionRepo = memsessionrepo.NewRepo()
		refdataRepo = memrefdatarepo.NewSeeded()
	}

	if cleanup != nil {
		defer cleanup()
	}

	images := memobjectstore.NewStore(cfg.UploadBaseURL, cfg.MaxUploadBytes)

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = kp.Close() }()
		publisher = kp
	}

	tokenCfg := tokens.Config{Secret: cfg.TokenSecret, Issuer: cfg.TokenIssuer, TTL: cfg.TokenTTL}
	accountSvc := accounts.NewService(identityRepo, sessionRepo, clk, tokenCfg)
	activitySvc := activities.NewService(activityRepo, refdataRepo, images, clk, publisher)

	handler := httpapi.NewRouter(httpapi.Deps{
		Accounts:       accountSvc,
		Activities:     activitySvc,
		RefData:        refdataRepo,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on %s (storage=%s)", cfg.HTTPAddress, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
