package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "BTC-USD", cfg.DataSource.Symbol)
	assert.Equal(t, "2015-01-01", cfg.DataSource.Start)
	assert.Equal(t, "2022-12-31", cfg.DataSource.End)
	assert.Equal(t, 1000.0, cfg.Strategy.InitialCapital)
	assert.Equal(t, 1e-6, cfg.Strategy.ZeroEpsilon)
	assert.Equal(t, "merged_data.csv", cfg.Output.CSVPath)
	assert.Equal(t, time.Sunday, cfg.BuyDay())
	assert.Equal(t, time.Wednesday, cfg.SellDay())
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
data_source:
  symbol: ETH-USD
  start: "2020-01-01"
  end: "2021-01-01"
strategy:
  buy_weekday: Mon
  sell_weekday: fri
  initial_capital: 250
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("INITIAL_CAPITAL", "500")
	t.Setenv("OUTPUT_CSV", "out.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "ETH-USD", cfg.DataSource.Symbol)
	assert.Equal(t, 500.0, cfg.Strategy.InitialCapital)
	assert.Equal(t, "out.csv", cfg.Output.CSVPath)
	assert.Equal(t, time.Monday, cfg.BuyDay())
	assert.Equal(t, time.Friday, cfg.SellDay())

	start, err := cfg.StartDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: [unterminated"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"bad start", func(c *Config) { c.DataSource.Start = "01/01/2015" }, "data_source.start"},
		{"start after end", func(c *Config) { c.DataSource.Start = "2023-01-01" }, "must be before end"},
		{"bad buy weekday", func(c *Config) { c.Strategy.BuyWeekday = "someday" }, "strategy.buy_weekday"},
		{"bad sell weekday", func(c *Config) { c.Strategy.SellWeekday = "" }, "strategy.sell_weekday"},
		{"negative capital", func(c *Config) { c.Strategy.InitialCapital = -1 }, "initial_capital"},
		{"bad cron", func(c *Config) { c.Schedule.Cron = "every thursday" }, "schedule.cron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"sunday", time.Sunday},
		{"Sun", time.Sunday},
		{" WEDNESDAY ", time.Wednesday},
		{"sat", time.Saturday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseWeekday("funday")
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnv(filepath.Join(dir, ".env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WEEKDAYCYCLE_TEST_KEY=from-file\n"), 0o644))
	t.Setenv("WEEKDAYCYCLE_TEST_KEY", "")
	os.Unsetenv("WEEKDAYCYCLE_TEST_KEY")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv("WEEKDAYCYCLE_TEST_KEY"))
}
