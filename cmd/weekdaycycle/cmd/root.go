package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"WeekdayCycle/internal/config"
	"WeekdayCycle/internal/logging"
)

const defaultConfigPath = "configs/config.yaml"

var (
	cfgFile   string
	flagSym   string
	flagStart string
	flagEnd   string
	flagCap   float64
	flagCSV   string
	flagPlot  string
	flagData  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "weekdaycycle",
	Short: "Backtest a buy-one-weekday, sell-another-weekday calendar strategy",
	Long: `weekdaycycle backtests a calendar strategy on daily price bars.

It buys at the open of every buy weekday (Sunday by default), sells at the
close of the next sell weekday on or after it (Wednesday by default), rolls a
single capital value through every cycle and reports the cumulative profit.

Example:
  weekdaycycle run --symbol BTC-USD --start 2015-01-01 --end 2022-12-31`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	err := rootCmd.Execute()
	if err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")
	pf.StringVar(&flagSym, "symbol", "", "ticker symbol, e.g. BTC-USD")
	pf.StringVar(&flagStart, "start", "", "first day of the backtest (YYYY-MM-DD)")
	pf.StringVar(&flagEnd, "end", "", "end day of the backtest, exclusive (YYYY-MM-DD)")
	pf.Float64Var(&flagCap, "capital", 0, "initial capital")
	pf.StringVar(&flagCSV, "csv", "", "path of the merged cycle CSV")
	pf.StringVar(&flagPlot, "plot", "", "path of the cumulative profit PNG")
	pf.StringVar(&flagData, "data-csv", "", "replay daily bars from a local CSV instead of Yahoo Finance")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlags(cmd, c)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	cfg = c
	logger = logging.New(c.Log.Level)
	logger.Debug("config loaded", zap.String("path", path))
	return nil
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("symbol") {
		c.DataSource.Symbol = flagSym
	}
	if f.Changed("start") {
		c.DataSource.Start = flagStart
	}
	if f.Changed("end") {
		c.DataSource.End = flagEnd
	}
	if f.Changed("capital") {
		c.Strategy.InitialCapital = flagCap
	}
	if f.Changed("csv") {
		c.Output.CSVPath = flagCSV
	}
	if f.Changed("plot") {
		c.Output.PlotPath = flagPlot
	}
	if f.Changed("data-csv") {
		c.DataSource.CSVPath = flagData
	}
}
