package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/ledger"
	"server/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// DB pool (pgxpool)
	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	// GeoIP is optional; without a database path donations simply carry no country.
	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		country = resolver.CountryCode
	}

	campaigns := repo.NewCampaignRepository(dbpool)
	app := &handlers.App{
		Users:      repo.NewUserRepository(dbpool),
		Campaigns:  ledger.NewCampaignLedger(campaigns, cfg.MinTargetAmount, logger),
		Donations:  ledger.NewDonationRecorder(repo.NewDonationRepository(dbpool), campaigns, logger),
		Volunteers: repo.NewVolunteerRepository(dbpool),
		Stats:      repo.NewStatsRepository(dbpool),
		Metrics:    infra.NewMetrics(),
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
	}

	router := httpapi.NewRouter(app, cfg, logger, country)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
