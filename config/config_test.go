package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "./folio.sqlite", cfg.Database.Path)
	assert.Equal(t, "static", cfg.Quotes.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "http feed needs base url",
			config: &Config{
				Quotes: QuotesConfig{Type: "http"},
			},
			wantErr: true,
			errMsg:  "quotes.base_url required",
		},
		{
			name: "unknown feed type",
			config: &Config{
				Quotes: QuotesConfig{Type: "kafka"},
			},
			wantErr: true,
			errMsg:  "quotes.type must be",
		},
		{
			name: "non-positive static price",
			config: &Config{
				Quotes: QuotesConfig{Type: "static", Prices: map[string]float64{"AAPL": -1}},
			},
			wantErr: true,
			errMsg:  "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	data := `
database:
  path: /tmp/folio.db
quotes:
  type: static
  prices:
    AAPL: 187.41
    MSFT: 300
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/folio.db", cfg.Database.Path)
	assert.Equal(t, 187.41, cfg.Quotes.Prices["AAPL"])
}

func TestLoadFromFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.json")
	data := `{"quotes": {"type": "http", "base_url": "https://quotes.example.com", "token_env": "QUOTE_TOKEN"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://quotes.example.com", cfg.Quotes.BaseURL)
	assert.Equal(t, "QUOTE_TOKEN", cfg.Quotes.TokenEnv)
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quotes:\n  type: kafka\n"), 0644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.yaml")
	assert.Error(t, err)
}
