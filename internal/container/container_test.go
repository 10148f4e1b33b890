package container

import (
	"net/http"
	"testing"
	"time"

	"github.com/mozzadell/cc-optimizer/internal/config"
	"github.com/mozzadell/cc-optimizer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "default config",
			config: config.Default(),
		},
		{
			name: "custom endpoint and delimiter",
			config: func() *config.Config {
				cfg := config.Default()
				cfg.API.URL = "http://localhost:8080/api/optimize-cards"
				cfg.Output.CSVDelimiter = ";"
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config, WithLogger(logging.NewMockLogger()))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetOptimizer())
			assert.Equal(t, tt.config.API.URL, c.GetOptimizer().Endpoint())
			assert.NotNil(t, c.GetGenerator())
			assert.NotNil(t, c.GetProfileLoader())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_HTTPClient(t *testing.T) {
	cfg := config.Default()
	cfg.API.TimeoutSeconds = 7

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, c.httpClient.Timeout)

	custom := &http.Client{}
	c, err = NewContainer(cfg, WithLogger(logging.NewMockLogger()), WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, c.httpClient)
}

func TestNewContainer_BuildsLoggerFromConfig(t *testing.T) {
	c, err := NewContainer(config.Default())
	require.NoError(t, err)
	_, ok := c.GetLogger().(*logging.LogrusAdapter)
	assert.True(t, ok)
}
