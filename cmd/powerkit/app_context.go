package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/cache"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/pipeline"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/render"
)

// appContext wires the shared dependencies every command needs. Logging
// goes to a file inside the cache dir: stdout belongs to the status line.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	cache    *cache.Store
	pal      *palette.Palette
	resolver *render.Resolver
	pipeline *pipeline.Pipeline
}

func newAppContext(flags *rootFlags) (*appContext, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	cacheDir := cfg.ResolveCacheDir()
	log, err := logger.NewFileLogger(filepath.Join(cacheDir, "powerkit.log"), level)
	if err != nil {
		return nil, err
	}

	store, err := cache.NewStore(cacheDir)
	if err != nil {
		return nil, err
	}

	pal, err := loadPalette(cfg, store, log)
	if err != nil {
		return nil, err
	}

	return &appContext{
		cfg:      cfg,
		log:      log,
		cache:    store,
		pal:      pal,
		resolver: render.NewResolver(pal, log),
		pipeline: pipeline.New(cfg, store, log),
	}, nil
}

// loadPalette builds the palette, reusing the serialized form persisted by
// an earlier run when theme and tiers are unchanged. The key carries the
// theme file's mtime so edits take effect on the next render.
func loadPalette(cfg *config.Config, store *cache.Store, log *logger.Logger) (*palette.Palette, error) {
	tiers, err := cfg.TierSet()
	if err != nil {
		return nil, err
	}

	var themeStamp int64
	if cfg.Theme != "" {
		if info, err := os.Stat(cfg.Theme); err == nil {
			themeStamp = info.ModTime().UnixNano()
		}
	}
	key := fmt.Sprintf("palette.%s.%d.%v", cfg.Theme, themeStamp, tiers)

	if cached, ok := store.Get(key, time.Hour); ok {
		if pal, err := palette.Deserialize(cached); err == nil {
			return pal, nil
		}
	}

	theme, err := palette.LoadTheme(cfg.Theme, log)
	if err != nil {
		return nil, err
	}
	pal, err := palette.New(theme, tiers)
	if err != nil {
		return nil, err
	}
	if err := store.Set(key, pal.Serialize()); err != nil {
		log.Error(err, "persisting palette failed")
	}
	return pal, nil
}
