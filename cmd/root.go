package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tabdash/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var (
	errPrefix  = color.New(color.FgRed, color.Bold).Sprint("✗ Error:")
	warnPrefix = color.New(color.FgYellow).Sprint("⚠ Warning:")
	okPrefix   = color.New(color.FgGreen).Sprint("✓")
)

var rootCmd = &cobra.Command{
	Use:   "tabdash",
	Short: "tabdash: a browser dashboard for exploring CSV and Excel files",
	Long: `tabdash serves a single-page data analysis dashboard. Upload a CSV or XLSX file
and page through overview, statistics, column classes, charts, a correlation
heatmap, a pair plot, a histogram and a map of latitude/longitude columns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errPrefix, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		warnf("failed to load config: %v", err)
		return
	}
	cfg = c
}

func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warnPrefix, fmt.Sprintf(format, args...))
}

func successf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, okPrefix, fmt.Sprintf(format, args...))
}

// newLogger builds the process logger from config. --debug forces debug level.
func newLogger(w io.Writer, c *cfgpkg.Global, debug bool) *slog.Logger {
	level := slog.LevelInfo
	format := "text"
	if c != nil {
		switch strings.ToLower(c.LogLevel) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
		format = strings.ToLower(c.LogFormat)
	}
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
