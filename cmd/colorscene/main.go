package main

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/colorchange"
	"color-scene/internal/config"
	"color-scene/internal/env"
	"color-scene/internal/graphql"
	"color-scene/internal/logger"
	"color-scene/internal/render"
	"color-scene/internal/scene"
	"color-scene/internal/storage"
)

func main() {
	log := logger.New()
	if keys, err := env.Load(".env"); err != nil {
		log.WithError(err).Warn("could not load .env")
	} else if len(keys) > 0 {
		log.WithField("keys", len(keys)).Debug("loaded .env")
	}
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.Storage.BaseURL == "" {
		log.Warnf("no storage URL (set %s), the sphere will use the fallback texture", config.EnvStorageURL)
	}
	if cfg.API.GraphQLURL == "" {
		log.Warnf("no GraphQL URL (set %s), color changes will not be recorded", config.EnvGraphQLURL)
	}

	store := storage.New(cfg.Storage.BaseURL, cfg.Storage.Prefix, cfg.Storage.CacheDir, cfg.Storage.Timeout)
	api := graphql.New(cfg.API.GraphQLURL, cfg.API.APIKey, cfg.API.Timeout)
	reporter := colorchange.NewReporter(api, cfg.API.Timeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := scene.New()
	defer sc.Close()
	rnd := render.NewRenderer(log, render.Options{ShowFPS: cfg.Debug.ShowFPS, ShowLog: cfg.Debug.ShowLog})

	onSceneReady := func() {
		sc.Setup(ctx, scene.Deps{Textures: store, Reporter: reporter, Log: log}, scene.Options{
			TextureKey:              cfg.Storage.TextureKey,
			ValidateObjectExistence: cfg.Storage.ValidateObjectExistence,
			ShowBox:                 cfg.Scene.ShowBox,
			RPM:                     cfg.Scene.RPM,
		})
		log.WithField("key", cfg.Storage.TextureKey).Info("scene ready, fetching texture")
	}
	onRender := func(dt time.Duration) {
		sc.Poll()
		scene.Frame(sc, dt)
		rnd.Update(sc)
	}

	render.Run(cfg.Window, render.Hooks{
		Ready:    onSceneReady,
		Update:   onRender,
		Clear:    func() rl.Color { return rnd.ClearColor(sc) },
		Draw:     func() { rnd.Draw(sc) },
		Shutdown: rnd.Close,
	})
}
