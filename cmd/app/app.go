package app

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Demianms/MuseosApp/internal/api"
	"github.com/Demianms/MuseosApp/internal/client/museumapi"
	"github.com/Demianms/MuseosApp/internal/client/rest"
	"github.com/Demianms/MuseosApp/internal/client/weatherapi"
	"github.com/Demianms/MuseosApp/internal/clock"
	"github.com/Demianms/MuseosApp/internal/config"
	"github.com/Demianms/MuseosApp/internal/db"
	"github.com/Demianms/MuseosApp/internal/logger"
	"github.com/Demianms/MuseosApp/internal/repository"
	"github.com/Demianms/MuseosApp/internal/repository/dao"
	"github.com/Demianms/MuseosApp/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.Log.Level); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}
	config.Watch(configPath, func(c *config.AppConfig) {
		if err := logger.SetLevel(c.Log.Level); err != nil {
			zap.L().Warn("ignoring invalid log level", zap.String("level", c.Log.Level), zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.Stringer("level", logger.Level()))
	})

	// The backend stores amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	postgresDB, err := openDB(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	svcs, err := initServices(conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize services -> %w", err)
	}

	s := api.NewServer(conf, svcs)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openDB returns nil when quotation history is disabled.
func openDB(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}
	if !conf.Postgres.Enabled {
		zap.L().Info("postgres disabled, quotation history will be empty")
		return nil, nil
	}

	return db.OpenPostgres(conf.Postgres)
}

func initServices(conf *config.AppConfig, postgresDB *gorm.DB) (api.Services, error) {
	backend, err := rest.New(conf.Backend.BaseURL, conf.Backend.Timeout, conf.Backend.LogBodies)
	if err != nil {
		return api.Services{}, fmt.Errorf("rest.New(backend) -> %w", err)
	}
	weather, err := rest.New(conf.Weather.BaseURL, conf.Weather.Timeout, false)
	if err != nil {
		return api.Services{}, fmt.Errorf("rest.New(weather) -> %w", err)
	}
	if conf.Weather.APIKey == "" {
		zap.L().Warn("weather.api_key is empty, weather requests will fail")
	}

	var quotationDAO repository.QuotationDAO
	if postgresDB != nil {
		quotationDAO = dao.NewQuotationDAO(postgresDB)
	}

	museumsClient := museumapi.New(backend)
	museumRepo := repository.NewMuseumRepository(museumsClient)
	quotationRepo := repository.NewQuotationRepository(museumsClient, quotationDAO)
	weatherRepo := repository.NewWeatherRepository(weatherapi.New(weather, conf.Weather.APIKey))

	return api.Services{
		Museums:    service.NewMuseumService(museumRepo),
		Weather:    service.NewWeatherService(weatherRepo, conf.Weather.DefaultLocation),
		Quotations: service.NewQuotationService(museumRepo, quotationRepo, clock.NewSystem()),
	}, nil
}
