// main.go
//
// Entry point for the word search backend.
//   - `wordsearch serve` runs the HTTP/websocket server.
//   - `wordsearch gen` prints generated grids for a theme (offline tooling).
//
// Settings come from flags, then environment (.env is loaded first), then
// defaults; see internal/config.

package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/config"
)

var (
	v       = config.New()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:           "wordsearch",
	Short:         "Themed word search puzzles",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}
		setupLogging(config.Load(v))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, toml, json or .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("themes-dir", "", "Directory of theme files (default: embedded themes)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("themes_dir", rootCmd.PersistentFlags().Lookup("themes-dir"))
}

// setupLogging applies the level and uses a console writer outside production.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordsearch")
	}
}
