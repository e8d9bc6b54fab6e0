package main

import (
	"fmt"
	"os"

	"github.com/techtify/ensured-billing/internal/auth"
	"github.com/techtify/ensured-billing/internal/config"
	"github.com/techtify/ensured-billing/internal/db"
	"github.com/techtify/ensured-billing/internal/excel"
	httphandler "github.com/techtify/ensured-billing/internal/http"
	"github.com/techtify/ensured-billing/internal/http/middleware"
	"github.com/techtify/ensured-billing/internal/logger"
	"github.com/techtify/ensured-billing/internal/pdf"
	"github.com/techtify/ensured-billing/internal/repository"
	"github.com/techtify/ensured-billing/internal/service"
	"github.com/techtify/ensured-billing/internal/store"
	"github.com/techtify/ensured-billing/internal/template"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	templateRepo := repository.NewTemplateRepository(database)
	templateStore := template.NewStore(templateRepo, log)

	records := store.New()
	store.Seed(records)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	billingService := service.NewBillingService(records, templateStore, pdfGenerator, excelGenerator, cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(billingService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
