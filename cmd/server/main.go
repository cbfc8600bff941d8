package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"originstamp/internal/certificate/guard"
	certhandler "originstamp/internal/certificate/handler"
	certmetrics "originstamp/internal/certificate/metrics"
	certservice "originstamp/internal/certificate/service"
	certstore "originstamp/internal/certificate/store"
	"originstamp/internal/dashboard"
	nfthandler "originstamp/internal/nft/handler"
	nftmetrics "originstamp/internal/nft/metrics"
	nftservice "originstamp/internal/nft/service"
	nftstore "originstamp/internal/nft/store"
	"originstamp/internal/platform/config"
	"originstamp/internal/platform/httpserver"
	"originstamp/internal/platform/logger"
	platformredis "originstamp/internal/platform/redis"
	"originstamp/internal/s3io"
	s3handler "originstamp/internal/s3io/handler"
	sessionhandler "originstamp/internal/session/handler"
	sessionservice "originstamp/internal/session/service"
	sessionstore "originstamp/internal/session/store"
	subhandler "originstamp/internal/subscription/handler"
	subservice "originstamp/internal/subscription/service"
	substore "originstamp/internal/subscription/store"
	userhandler "originstamp/internal/user/handler"
	userservice "originstamp/internal/user/service"
	userstore "originstamp/internal/user/store"
	"originstamp/internal/user/token"
	"originstamp/pkg/platform/middleware/auth"
	request "originstamp/pkg/platform/middleware/request"
	"originstamp/pkg/platform/middleware/requesttime"
)

const tokenTTL = 24 * time.Hour

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := platformredis.Connect(context.Background(), cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var issuanceGuard guard.Guard
	if redisClient != nil {
		defer redisClient.Close()
		issuanceGuard = guard.NewRedisGuard(redisClient, cfg.LockGraceWindow)
		log.Info("issuance guard backed by redis")
	} else {
		issuanceGuard = guard.NewInMemoryGuard(cfg.LockGraceWindow)
	}

	userStore := userstore.NewInMemoryStore()
	sessionStore := sessionstore.NewInMemoryStore()
	tierRegistry := substore.NewInMemoryRegistry()
	certStore := certstore.NewInMemoryStore()
	tokenStore := nftstore.NewInMemoryStore()

	tokenMaker := token.NewMaker(cfg.JWTSigningKey, tokenTTL)

	userSvc, err := userservice.New(userStore, tokenMaker, userservice.WithLogger(log))
	if err != nil {
		log.Error("wiring user service", "error", err)
		os.Exit(1)
	}
	sessionSvc, err := sessionservice.New(sessionStore, sessionservice.WithLogger(log))
	if err != nil {
		log.Error("wiring session service", "error", err)
		os.Exit(1)
	}
	subSvc, err := subservice.New(tierRegistry, subservice.WithLogger(log))
	if err != nil {
		log.Error("wiring subscription service", "error", err)
		os.Exit(1)
	}
	certSvc, err := certservice.New(certStore, issuanceGuard, sessionStore, tierRegistry, userSvc,
		certservice.WithLogger(log),
		certservice.WithMetrics(certmetrics.New()),
	)
	if err != nil {
		log.Error("wiring certificate service", "error", err)
		os.Exit(1)
	}
	nftSvc, err := nftservice.New(tokenStore, certStore, sessionStore, tierRegistry,
		nftservice.WithLogger(log),
		nftservice.WithMetrics(nftmetrics.New()),
	)
	if err != nil {
		log.Error("wiring nft service", "error", err)
		os.Exit(1)
	}
	storageSvc := s3io.NewService()
	dashboardSvc := dashboard.New(userSvc, sessionSvc, certSvc, nftSvc, log)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(request.Middleware)
	router.Use(requesttime.Middleware)

	router.Handle("/metrics", promhttp.Handler())

	userHandler := userhandler.New(userSvc, log)
	sessionHandler := sessionhandler.New(sessionSvc, log)
	subHandler := subhandler.New(subSvc, log)
	certHandler := certhandler.New(certSvc, log)
	nftHandler := nfthandler.New(nftSvc, log)
	storageHandler := s3handler.New(storageSvc, log)

	// Registration, login, verification, and token reads stay public so QR
	// scans and marketplaces work without an account.
	router.Group(func(r chi.Router) {
		userHandler.RegisterPublic(r)
		certHandler.RegisterPublic(r)
		nftHandler.RegisterPublic(r)
		dashboardSvc.Register(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokenMaker, log))
		userHandler.Register(r)
		sessionHandler.Register(r)
		subHandler.Register(r)
		certHandler.Register(r)
		nftHandler.Register(r)
		storageHandler.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting originstamp", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
