// main.go
//
// Process entry point: load .env, parse flags, open the history database,
// seed the songbook, and start serving HTTP.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mgallois/lyricparty/internal/catalog"
	"github.com/mgallois/lyricparty/internal/httpserver"
	"github.com/mgallois/lyricparty/internal/store"
)

const releaseVersion = "0.1.0"

func main() {
	_ = godotenv.Load()
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func run(cfg *Config) error {
	if lvl, err := zerolog.ParseLevel(cfg.logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		return err
	}

	songbook, err := catalog.LoadSongbook(cfg.songbook)
	if err != nil {
		return err
	}
	log.Info().
		Int("songs", len(songbook.Songs())).
		Strs("categories", songbook.PlayableCategories()).
		Msg("songbook loaded")

	srv := httpserver.New(store.NewMemoryStore(), songbook, db)
	log.Info().Str("addr", cfg.addr()).Msg("starting lyricparty")
	return srv.Start(cfg.addr())
}
