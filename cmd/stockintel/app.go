package main

import (
	"fmt"

	"github.com/fekuna/stockintel-service/config"
	"github.com/fekuna/stockintel-service/internal/analytics"
	"github.com/fekuna/stockintel-service/internal/catalog"
	"github.com/fekuna/stockintel-service/internal/insight"
	insightRepoPkg "github.com/fekuna/stockintel-service/internal/insight/repository"
	insightUCPkg "github.com/fekuna/stockintel-service/internal/insight/usecase"
	"github.com/fekuna/stockintel-service/internal/model"
	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/pkg/upstream"
	"github.com/fekuna/stockintel-service/internal/stock"
	stockRepoPkg "github.com/fekuna/stockintel-service/internal/stock/repository"
	stockUCPkg "github.com/fekuna/stockintel-service/internal/stock/usecase"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// app holds everything both the server and the CLI commands need.
type app struct {
	cfg        *config.Config
	logger     logger.ZapLogger
	rule       analytics.CriticalRule
	thresholds model.RiskThresholds
	stockUC    stock.UseCase
	insightUC  insight.UseCase
}

func newApp() (*app, error) {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	switch cfg.Server.AppEnv {
	case "dev", "development":
		logConfig.IsDevelopment = true
	case "prod", "production":
		logConfig.Encoding = "json"
	}
	appLogger := logger.NewZapLogger(logConfig)

	// 3. Load Cluster Catalog
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		cat = loaded
		appLogger.Info("Loaded cluster catalog", zap.String("path", cfg.Catalog.Path))
	}

	// 4. Build Critical Rule
	rule, err := analytics.NewCriticalRule(cfg.Rules)
	if err != nil {
		return nil, err
	}
	thresholds := model.RiskThresholds{CVMin: cfg.Rules.RiskCVMin, CoverageMax: cfg.Rules.RiskCoverageMax}

	// 5. Initialize Repositories
	client := upstream.New(cfg.Upstream.Timeout)
	stockRepo := stockRepoPkg.NewHTTPRepository(client, cfg.Upstream.URL(cfg.Upstream.ItemsPath), appLogger)
	insightRepo := insightRepoPkg.NewHTTPRepository(client, insightRepoPkg.Endpoints{
		Risk:        cfg.Upstream.URL(cfg.Upstream.RiskPath),
		Seasonality: cfg.Upstream.URL(cfg.Upstream.SeasonalityPath),
		Strategy:    cfg.Upstream.URL(cfg.Upstream.StrategyPath),
		Inflation:   cfg.Upstream.URL(cfg.Upstream.InflationPath),
	})

	// 6. Initialize UseCases
	return &app{
		cfg:        cfg,
		logger:     appLogger,
		rule:       rule,
		thresholds: thresholds,
		stockUC:    stockUCPkg.NewStockUseCase(stockRepo, cat, rule, appLogger),
		insightUC:  insightUCPkg.NewInsightUseCase(insightRepo, thresholds, appLogger),
	}, nil
}
