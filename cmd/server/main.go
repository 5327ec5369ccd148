package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"startup-benefits/backend/internal/audit"
	auditrepo "startup-benefits/backend/internal/audit/repository"
	authhandler "startup-benefits/backend/internal/auth/handler"
	authservice "startup-benefits/backend/internal/auth/service"
	claimhandler "startup-benefits/backend/internal/claim/handler"
	claimrepo "startup-benefits/backend/internal/claim/repository"
	claimservice "startup-benefits/backend/internal/claim/service"
	"startup-benefits/backend/internal/config"
	"startup-benefits/backend/internal/db"
	dealhandler "startup-benefits/backend/internal/deal/handler"
	dealrepo "startup-benefits/backend/internal/deal/repository"
	dealservice "startup-benefits/backend/internal/deal/service"
	policyengine "startup-benefits/backend/internal/policy/engine"
	"startup-benefits/backend/internal/security"
	"startup-benefits/backend/internal/server"
	"startup-benefits/backend/internal/server/middleware"
	"startup-benefits/backend/internal/telemetry/otel"
	userrepo "startup-benefits/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; create a .env from .env.example or set JWT_SECRET")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	tracing, err := otel.NewProvider(ctx, cfg.OTLPEndpoint, "benefits-api")
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	evaluator, err := policyengine.NewOPAEvaluator()
	if err != nil {
		log.Fatalf("policy: %v", err)
	}

	users := userrepo.NewPostgresRepository(conn)
	deals := dealrepo.NewPostgresRepository(conn)
	claims := claimrepo.NewPostgresRepository(conn)
	auditLogger := audit.NewLogger(auditrepo.NewPostgresRepository(conn), middleware.ClientIPFrom)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL())

	authSvc := authservice.NewAuthService(users, hasher, tokens)
	catalogSvc := dealservice.NewCatalogService(deals)
	claimSvc := claimservice.NewClaimService(deals, claims, evaluator)

	router := server.New(server.Deps{
		Auth:        authhandler.NewHandler(authSvc, auditLogger),
		Deals:       dealhandler.NewHandler(catalogSvc),
		Claims:      claimhandler.NewHandler(claimSvc, auditLogger),
		RequireAuth: middleware.RequireAuth(authSvc),
		DB:          conn,
		Policy:      evaluator,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: otelhttp.NewHandler(router, "benefits-api"),
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
