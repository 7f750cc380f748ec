package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, RuleCluster, cfg.Rules.CriticalRule)
	assert.Equal(t, 3, cfg.Rules.CriticalClusterID)
	assert.Equal(t, 0.8, cfg.Rules.RiskCVMin)
	assert.Equal(t, 1.0, cfg.Rules.RiskCoverageMax)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://analytics:9000/")
	t.Setenv("UPSTREAM_TIMEOUT", "750ms")
	t.Setenv("CRITICAL_RULE", RuleThreshold)
	t.Setenv("CRITICAL_MAX_STOCK", "7")
	t.Setenv("RISK_CV_MIN", "1.25")
	t.Setenv("CORS_ORIGINS", "http://a,http://b")

	cfg := LoadEnv()

	assert.Equal(t, "http://analytics:9000", cfg.Upstream.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Upstream.Timeout)
	assert.Equal(t, RuleThreshold, cfg.Rules.CriticalRule)
	assert.Equal(t, int64(7), cfg.Rules.CriticalMaxStock)
	assert.Equal(t, 1.25, cfg.Rules.RiskCVMin)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORS.Origins)
}

func TestLoadEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CRITICAL_CLUSTER_ID", "three")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	cfg := LoadEnv()

	assert.Equal(t, 3, cfg.Rules.CriticalClusterID)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := LoadEnv()
	cfg.Rules.CriticalRule = "cost"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRule))

	cfg = LoadEnv()
	cfg.Upstream.Timeout = 0
	assert.Error(t, cfg.Validate())
}

func TestUpstreamURL(t *testing.T) {
	u := UpstreamConfig{BaseURL: "http://host:8000"}
	assert.Equal(t, "http://host:8000/api/x", u.URL("/api/x"))
	assert.Equal(t, "http://host:8000/api/x", u.URL("api/x"))
	assert.Equal(t, "http://host:8000", u.URL(""))
}
