package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/database"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		Long: `Run the HTTP and websocket server.

Examples:
  wordsearch serve
  wordsearch serve --port 8080 --db ./data/app.db`,
		RunE: runServe,
	}
	serveCmd.Flags().String("port", "", "Listen port (default 5175)")
	serveCmd.Flags().String("db", "", "SQLite database path")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("db_path", serveCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load(v)

	if err := words.Init(cfg.ThemesDir); err != nil {
		return err
	}
	themes, entries := words.Stats()
	log.Info().Int("themes", themes).Int("entries", entries).Msg("themes loaded")

	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := httpserver.New(store.NewMemoryStore(), db, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting wordsearch server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
