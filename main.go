package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crovisgrind/art-guessing-game/assets"
	"github.com/crovisgrind/art-guessing-game/internal/auth"
	"github.com/crovisgrind/art-guessing-game/internal/catalog"
	"github.com/crovisgrind/art-guessing-game/internal/config"
	"github.com/crovisgrind/art-guessing-game/internal/daily"
	"github.com/crovisgrind/art-guessing-game/internal/db"
	"github.com/crovisgrind/art-guessing-game/internal/httpserver"
	"github.com/crovisgrind/art-guessing-game/internal/render"
	"github.com/crovisgrind/art-guessing-game/internal/session"
	"github.com/crovisgrind/art-guessing-game/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	log.Info().Int("paintings", len(cat.Paintings)).Int("rounds", len(cat.Rounds)).Msg("catalog loaded")

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	var backend store.Backend = store.NewSQLite(conn)
	if cfg.Store == "memory" {
		backend = store.NewMemory()
		log.Warn().Msg("game state kept in memory; it is lost on restart")
	}
	records := store.NewRecords(backend)
	users := auth.NewUsers(conn)
	results := daily.NewStore(conn)

	svc := session.New(cat, records, records, session.Options{
		Epoch:    cfg.Epoch,
		Location: cfg.Location,
		Results:  results,
		Stats:    users,
	})

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Session:  svc,
		Renderer: render.New(cfg.ArtworkDir, cfg.CanvasSize),
		Results:  results,
		Users:    users,
		Tokens: &auth.Tokens{
			Secret:     []byte(cfg.JWTSecret),
			TTL:        cfg.JWTTTL,
			CookieName: cfg.CookieName,
			Secure:     cfg.Production(),
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting art-guess server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server stopped")
}
