package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite provides a test suite for configuration loading
type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (suite *ConfigTestSuite) TestLoad() {
	suite.Run("NoConfigFile_ShouldLoadDefaults", func() {
		// Act: no config file in the search path, defaults cover everything
		cfg, err := Load("")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "mealplanner", cfg.App.Name)
		assert.Equal(suite.T(), "development", cfg.App.Environment)
		assert.Equal(suite.T(), 8080, cfg.Server.Port)
		assert.Equal(suite.T(), "mealplanner.db", cfg.Database.Path)
		assert.Equal(suite.T(), "silent", cfg.Database.LogLevel)
		assert.True(suite.T(), cfg.Database.AutoMigrate)
		assert.Equal(suite.T(), "https://api.spoonacular.com", cfg.Provider.BaseURL)
		assert.Equal(suite.T(), 5.0, cfg.Provider.RequestsPerSecond)
		assert.Equal(suite.T(), 15*time.Minute, cfg.Provider.CacheTTL)
		assert.False(suite.T(), cfg.Redis.Enabled)
		assert.True(suite.T(), cfg.Monitoring.EnableMetrics)
		assert.True(suite.T(), cfg.IsDevelopment())
	})

	suite.Run("ConfigFile_ShouldOverrideDefaults", func() {
		// Arrange
		path := suite.writeConfig(`
app:
  environment: staging
server:
  port: 9090
database:
  path: ":memory:"
  seed: true
planner:
  seed: 42
redis:
  enabled: true
  host: cache.internal
`)

		// Act
		cfg, err := Load(path)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "staging", cfg.App.Environment)
		assert.Equal(suite.T(), 9090, cfg.Server.Port)
		assert.Equal(suite.T(), ":memory:", cfg.Database.Path)
		assert.True(suite.T(), cfg.Database.Seed)
		assert.Equal(suite.T(), int64(42), cfg.Planner.Seed)
		assert.Equal(suite.T(), "cache.internal:6379", cfg.RedisAddr())
	})

	suite.Run("InvalidEnvironment_ShouldFailValidation", func() {
		// Arrange
		path := suite.writeConfig(`
app:
  environment: sandbox
`)

		// Act
		cfg, err := Load(path)

		// Assert
		assert.Nil(suite.T(), cfg)
		assert.Error(suite.T(), err)
	})

	suite.Run("InvalidPort_ShouldFailValidation", func() {
		// Arrange
		path := suite.writeConfig(`
server:
  port: 0
`)

		// Act
		cfg, err := Load(path)

		// Assert
		assert.Nil(suite.T(), cfg)
		assert.Error(suite.T(), err)
	})

	suite.Run("ProductionWithoutAPIKey_ShouldFail", func() {
		// Arrange
		path := suite.writeConfig(`
app:
  environment: production
`)

		// Act
		cfg, err := Load(path)

		// Assert
		assert.Nil(suite.T(), cfg)
		assert.ErrorContains(suite.T(), err, "api_key")
	})

	suite.Run("ProductionWithAPIKey_ShouldPass", func() {
		// Arrange
		path := suite.writeConfig(`
app:
  environment: production
provider:
  api_key: secret
`)

		// Act
		cfg, err := Load(path)

		// Assert
		require.NoError(suite.T(), err)
		assert.True(suite.T(), cfg.IsProduction())
	})
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
