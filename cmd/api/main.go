package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teamnine/humanofdelivery/backend/internal/common/clock"
	"github.com/teamnine/humanofdelivery/backend/internal/common/config"
	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
	commoncrypto "github.com/teamnine/humanofdelivery/backend/internal/common/crypto"
	"github.com/teamnine/humanofdelivery/backend/internal/common/db"
	commonhttp "github.com/teamnine/humanofdelivery/backend/internal/common/http"
	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
	srv "github.com/teamnine/humanofdelivery/backend/internal/common/server"
	memberhttp "github.com/teamnine/humanofdelivery/backend/internal/member/http"
	memberrepo "github.com/teamnine/humanofdelivery/backend/internal/member/repository"
	memberservice "github.com/teamnine/humanofdelivery/backend/internal/member/service"
	menurepo "github.com/teamnine/humanofdelivery/backend/internal/menu/repository"
	menuservice "github.com/teamnine/humanofdelivery/backend/internal/menu/service"
	orderhttp "github.com/teamnine/humanofdelivery/backend/internal/order/http"
	orderrepo "github.com/teamnine/humanofdelivery/backend/internal/order/repository"
	orderservice "github.com/teamnine/humanofdelivery/backend/internal/order/service"
	"github.com/teamnine/humanofdelivery/backend/internal/session"
	storehttp "github.com/teamnine/humanofdelivery/backend/internal/store/http"
	storerepo "github.com/teamnine/humanofdelivery/backend/internal/store/repository"
	storeservice "github.com/teamnine/humanofdelivery/backend/internal/store/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	memberRepo := memberrepo.NewPgRepository(pool)
	storeRepo := storerepo.NewPgRepository(pool)
	menuRepo := menurepo.NewPgRepository(pool)
	orderRepo := orderrepo.NewPgRepository(pool)

	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := &commoncrypto.UUIDGenerator{}
	authorizer := memberservice.StatusAuthorizer{}

	sessions := session.NewMemoryStore(cfg.SessionTTL, idGenerator, clock.NewRealClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartCleanup(ctx, constants.SessionCleanupInterval)

	memberService := memberservice.NewMemberService(memberRepo, storeRepo, hasher, authorizer, sessions, log)
	storeService := storeservice.NewStoreService(storeRepo, memberRepo, authorizer, log)
	menuService := menuservice.NewMenuService(menuRepo, storeRepo, memberRepo, authorizer, log)
	orderService := orderservice.NewOrderService(orderRepo, storeRepo, menuRepo, memberRepo, authorizer, log)

	memberHandler := memberhttp.NewHandler(memberService, sessions, cfg.RequestTimeout, log)
	storeHandler := storehttp.NewHandler(storeService, menuService, sessions, cfg.RequestTimeout, log)
	orderHandler := orderhttp.NewHandler(orderService, sessions, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/api/members/", memberHandler)
	mux.Handle("/api/stores", storeHandler)
	mux.Handle("/api/stores/", storeHandler)
	mux.Handle("/api/orders", orderHandler)
	mux.Handle("/api/orders/", orderHandler)
	mux.Handle("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("api service: stopping session cleanup")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "api", shutdownHooks)
}
