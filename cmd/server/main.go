// path: cmd/server/main.go
// Serves the Shadows-mode battle over HTTP: the player moves through the
// JSON API, the enemy side is driven by the built-in shadow AI.
package main

import (
	"flag"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"shadow_chess_poc/internal/game"
	"shadow_chess_poc/internal/httpx"
	"shadow_chess_poc/internal/storage"
)

func main() {
	addr := flag.String("addr", getenv("SCHESS_ADDR", ":8080"), "listen address")
	seed := flag.Int64("seed", geteni("SCHESS_SEED", 0), "rng seed for the enemy AI (0 = time-based)")
	dbDir := flag.String("db", getenv("SCHESS_DB", ""), "badger directory for stats (empty = user config dir)")
	noStore := flag.Bool("no-store", getenb("SCHESS_NO_STORE", false), "disable persistent match stats")
	dev := flag.Bool("dev", getenb("SCHESS_DEV", false), "development logging")
	flag.Parse()

	log, err := newLogger(*dev)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var store *storage.Store
	if !*noStore {
		store, err = storage.Open(*dbDir)
		if err != nil {
			// Stats are a convenience; play on without them.
			log.Warn("stats storage unavailable", zap.Error(err))
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	if *seed == 0 && store != nil {
		if prefs, err := store.LoadPreferences(); err == nil {
			*seed = prefs.PinnedSeed
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	log.Info("starting shadows battle", zap.Int64("seed", *seed))

	battle := game.NewBattle(game.NewShadowOpponent(rng), rng, log)

	srv, err := httpx.NewServer(battle, store, log)
	if err != nil {
		log.Fatal("http init", zap.Error(err))
	}
	if err := srv.Listen(*addr); err != nil {
		log.Fatal("http serve", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func geteni(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}
