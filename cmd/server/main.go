package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ngramcorrector/internal/config"
	"ngramcorrector/internal/customdict"
	"ngramcorrector/internal/model"
	"ngramcorrector/internal/service"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.Fatalf("loading .env: %v", err)
	}
	cfg := config.LoadServerConfig()

	log, err := config.NewLogger(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		logrus.Fatalf("init error: %v", err)
	}

	cf, err := config.LoadCorrectorFile(cfg.CorrectorConfig)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis %s: %v", cfg.RedisAddr, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	modelOpts := append(cf.ModelOptions(), model.WithLogger(log))
	svc, err := service.New(ctx, service.Config{
		Load:             service.FileLoader(cfg.ModelPath, modelOpts...),
		Store:            customdict.New(client, cfg.RedisKey),
		CorrectorOptions: cf.Options(),
		CacheSize:        cfg.CacheSize,
		Logger:           log,
		Registry:         reg,
	})
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      svc,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
		os.Exit(1)
	}
}
