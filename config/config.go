package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidRule = errors.New("invalid critical rule")

const (
	RuleCluster   = "cluster"
	RuleThreshold = "threshold"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Upstream UpstreamConfig
	Rules    RulesConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	AppEnv       string
	HTTPPort     string
	GRPCPort     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// UpstreamConfig points at the analytics API that delivers pre-clustered items and insights.
type UpstreamConfig struct {
	BaseURL         string
	ItemsPath       string
	RiskPath        string
	SeasonalityPath string
	StrategyPath    string
	InflationPath   string
	Timeout         time.Duration
}

type RulesConfig struct {
	CriticalRule      string
	CriticalClusterID int
	CriticalUnitCost  float64
	CriticalMaxStock  int64
	RiskCVMin         float64
	RiskCoverageMax   float64
}

type CatalogConfig struct {
	Path string
}

type CORSConfig struct {
	Origins []string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:       getEnv("APP_ENV", "dev"),
			HTTPPort:     getEnv("HTTP_PORT", ":8080"),
			GRPCPort:     getEnv("GRPC_PORT", ":8082"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Upstream: UpstreamConfig{
			BaseURL:         strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
			ItemsPath:       getEnv("API_ITEMS_PATH", "/api/dados-clusters"),
			RiskPath:        getEnv("API_RISK_PATH", "/api/insights/risk"),
			SeasonalityPath: getEnv("API_SEASONALITY_PATH", "/api/insights/seasonality"),
			StrategyPath:    getEnv("API_STRATEGY_PATH", "/api/insights/strategy"),
			InflationPath:   getEnv("API_INFLATION_PATH", "/api/insights/inflation"),
			Timeout:         getEnvDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		},
		Rules: RulesConfig{
			CriticalRule:      getEnv("CRITICAL_RULE", RuleCluster),
			CriticalClusterID: getEnvInt("CRITICAL_CLUSTER_ID", 3),
			CriticalUnitCost:  getEnvFloat("CRITICAL_UNIT_COST", 1000),
			CriticalMaxStock:  int64(getEnvInt("CRITICAL_MAX_STOCK", 5)),
			RiskCVMin:         getEnvFloat("RISK_CV_MIN", 0.8),
			RiskCoverageMax:   getEnvFloat("RISK_COVERAGE_MAX", 1.0),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CLUSTER_CATALOG_PATH", ""),
		},
		CORS: CORSConfig{
			Origins: getEnvSlice("CORS_ORIGINS", []string{"*"}),
		},
	}
}

// Validate catches settings that would otherwise fail on the first request.
func (c *Config) Validate() error {
	switch c.Rules.CriticalRule {
	case RuleCluster, RuleThreshold:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRule, c.Rules.CriticalRule)
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.Rules.RiskCVMin < 0 || c.Rules.RiskCoverageMax < 0 {
		return errors.New("risk thresholds must not be negative")
	}
	return nil
}

// URL joins the upstream base with one of the configured paths.
func (u UpstreamConfig) URL(path string) string {
	if path == "" {
		return u.BaseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return u.BaseURL + path
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
