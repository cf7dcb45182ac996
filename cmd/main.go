package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/pdf2zip/internal/config"
	"github.com/Vovarama1992/pdf2zip/internal/convert"
	"github.com/Vovarama1992/pdf2zip/internal/delivery"
	"github.com/Vovarama1992/pdf2zip/internal/fetch"
	"github.com/Vovarama1992/pdf2zip/internal/notify"
	"github.com/Vovarama1992/pdf2zip/internal/pdf"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg := config.FromEnv()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	rasterizer := pdf.NewPopplerRasterizer()
	pdfService := pdf.NewPDFService(rasterizer)

	httpFetcher := fetch.NewHTTPFetcher(cfg.MaxBodyBytes)

	var s3Fetcher *fetch.S3Fetcher
	if cfg.S3Endpoint != "" {
		var err error
		s3Fetcher, err = fetch.NewS3Fetcher(cfg)
		if err != nil {
			log.Fatalf("failed to init s3 fetcher: %v", err)
		}
	}

	fetchService := fetch.NewService(httpFetcher, s3Fetcher)

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var notifier convert.Notifier
	if cfg.ErrorBotToken != "" {
		infra, err := notify.NewInfra(cfg.ErrorBotToken, cfg.ErrorAdminChatID)
		if err != nil {
			log.Fatalf("failed to init error notifier: %v", err)
		}
		notifier = notify.NewService(infra)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	convertService := convert.NewService(pdfService, fetchService, notifier, zl)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	convertHandler := delivery.NewConvertHandler(convertService, zl, cfg.MaxBodyBytes)

	delivery.RegisterRoutes(r, convertHandler)

	log.Printf("pdf2zip listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
