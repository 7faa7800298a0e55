package main

import (
	"context"
	"os"
	"os/signal"

	"semlog/app/client/ingest"
	"semlog/app/client/owlfile"
	"semlog/app/client/redisstore"
	"semlog/app/client/s3store"
	"semlog/app/client/timeline"
	"semlog/app/config"
	"semlog/app/semantic"
	"semlog/app/service/aggregator"
	"semlog/app/service/contact"
	"semlog/app/service/engine"
	"semlog/app/service/grasp"
	"semlog/app/service/queue"
	"semlog/app/service/session"
	"semlog/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "semlog",
	Short:         "Symbolic event logging for simulated episodes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	mylog.Preinit()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the config file")
	rootCmd.AddCommand(replayCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// setup loads the config and registers every service. The returned context
// is canceled on interrupt.
func setup(episodeID string) (*do.Injector, context.Context, context.CancelFunc) {
	di := do.New()

	appCtx, cancel := context.WithCancel(context.Background())

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if episodeID != "" {
		cfg.Episode.EpisodeID = episodeID
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, semantic.New)
	do.Provide(di, owlfile.New)
	do.Provide(di, timeline.New)
	do.Provide(di, s3store.New)
	do.Provide(di, redisstore.New)
	do.Provide(di, aggregator.New)
	do.Provide(di, contact.New)
	do.Provide(di, grasp.New)
	do.Provide(di, session.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)
	do.Provide(di, ingest.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		select {
		case <-sigint:
			log.Info("Shutting down...")
			cancel()
		case <-appCtx.Done():
		}
	}()

	return di, appCtx, cancel
}
