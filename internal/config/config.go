package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"WeekdayCycle/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	DataSource struct {
		Symbol  string `yaml:"symbol"`
		Start   string `yaml:"start"`
		End     string `yaml:"end"`
		CSVPath string `yaml:"csv_path"` // replay bars from a local file instead of Yahoo
	} `yaml:"data_source"`
	Strategy struct {
		BuyWeekday     string  `yaml:"buy_weekday"`
		SellWeekday    string  `yaml:"sell_weekday"`
		InitialCapital float64 `yaml:"initial_capital"`
		ZeroEpsilon    float64 `yaml:"zero_epsilon"`
	} `yaml:"strategy"`
	Output struct {
		CSVPath  string `yaml:"csv_path"`
		PlotPath string `yaml:"plot_path"`
	} `yaml:"output"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Listen string `yaml:"listen"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// LoadEnv loads a .env file into the process environment. A missing file is ignored.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("START_DATE"); v != "" {
		cfg.DataSource.Start = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		cfg.DataSource.End = v
	}
	if v := os.Getenv("DATA_CSV"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Strategy.InitialCapital = capital
		}
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("OUTPUT_PLOT"); v != "" {
		cfg.Output.PlotPath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "BTC-USD"
	}
	if cfg.DataSource.Start == "" {
		cfg.DataSource.Start = "2015-01-01"
	}
	if cfg.DataSource.End == "" {
		cfg.DataSource.End = "2022-12-31"
	}
	if cfg.Strategy.BuyWeekday == "" {
		cfg.Strategy.BuyWeekday = "sunday"
	}
	if cfg.Strategy.SellWeekday == "" {
		cfg.Strategy.SellWeekday = "wednesday"
	}
	if cfg.Strategy.InitialCapital == 0 {
		cfg.Strategy.InitialCapital = 1000
	}
	if cfg.Strategy.ZeroEpsilon == 0 {
		cfg.Strategy.ZeroEpsilon = 1e-6
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "merged_data.csv"
	}
	if cfg.Output.PlotPath == "" {
		cfg.Output.PlotPath = "cumulative_profit.png"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 6 * * 4"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	var errs error

	if c.DataSource.Symbol == "" {
		errs = errors.Join(errs, errors.New("data_source.symbol is required"))
	}
	start, err := c.StartDate()
	if err != nil {
		errs = errors.Join(errs, err)
	}
	end, err := c.EndDate()
	if err != nil {
		errs = errors.Join(errs, err)
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		errs = errors.Join(errs, fmt.Errorf("data_source.start %s must be before end %s", c.DataSource.Start, c.DataSource.End))
	}
	if _, err := ParseWeekday(c.Strategy.BuyWeekday); err != nil {
		errs = errors.Join(errs, fmt.Errorf("strategy.buy_weekday: %w", err))
	}
	if _, err := ParseWeekday(c.Strategy.SellWeekday); err != nil {
		errs = errors.Join(errs, fmt.Errorf("strategy.sell_weekday: %w", err))
	}
	if c.Strategy.InitialCapital <= 0 {
		errs = errors.Join(errs, errors.New("strategy.initial_capital must be positive"))
	}
	if c.Strategy.ZeroEpsilon <= 0 {
		errs = errors.Join(errs, errors.New("strategy.zero_epsilon must be positive"))
	}
	if c.Output.CSVPath == "" {
		errs = errors.Join(errs, errors.New("output.csv_path is required"))
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Schedule.Cron); err != nil {
		errs = errors.Join(errs, fmt.Errorf("schedule.cron: %w", err))
	}

	return errs
}

// StartDate parses data_source.start.
func (c *Config) StartDate() (time.Time, error) {
	return parseDate("data_source.start", c.DataSource.Start)
}

// EndDate parses data_source.end. The end day is exclusive.
func (c *Config) EndDate() (time.Time, error) {
	return parseDate("data_source.end", c.DataSource.End)
}

// BuyDay returns the configured buy weekday. Call Validate first.
func (c *Config) BuyDay() time.Weekday {
	d, _ := ParseWeekday(c.Strategy.BuyWeekday)
	return d
}

// SellDay returns the configured sell weekday. Call Validate first.
func (c *Config) SellDay() time.Weekday {
	d, _ := ParseWeekday(c.Strategy.SellWeekday)
	return d
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// ParseWeekday accepts full or three-letter English day names, case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return d, nil
}
