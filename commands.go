package main

import (
	"context"
	"fmt"
	"log/slog"

	"semlog/app/client/ingest"
	"semlog/app/client/replay"
	"semlog/app/service/engine"
	"semlog/app/service/queue"
	"semlog/app/service/session"
	"semlog/app/util/report"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a recorded signal script and write the episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := replay.Load(args[0])
		if err != nil {
			return err
		}

		di, appCtx, cancel := setup(script.EpisodeID)
		defer cancel()
		defer di.Shutdown()

		engineSvc := do.MustInvoke[*engine.Service](di)
		go engineSvc.Run(appCtx)

		feedCtx, stopFeed := context.WithCancel(appCtx)
		defer stopFeed()
		go func() {
			<-engineSvc.Done()
			stopFeed()
		}()

		bar := report.Progress(len(script.Signals)+1, "Replaying")
		if err = script.Feed(feedCtx, do.MustInvoke[*queue.Service](di), bar); err != nil {
			slog.Warn("Replay interrupted", "error", err)
		}
		_ = bar.Finish()

		<-engineSvc.Done()

		return summarize(cmd, di, engineSvc)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept signals over HTTP until finished or interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		di, appCtx, cancel := setup("")
		defer cancel()
		defer di.Shutdown()

		engineSvc := do.MustInvoke[*engine.Service](di)
		server := do.MustInvoke[*ingest.Server](di)

		go func() {
			if err := server.Run(); err != nil {
				slog.Error("Ingest server failed", "error", err)
				cancel()
			}
		}()

		go engineSvc.Run(appCtx)

		slog.Info("Service started")

		<-engineSvc.Done()

		log.Info("Waiting for services to finish...")

		return summarize(cmd, di, engineSvc)
	},
}

func summarize(cmd *cobra.Command, di *do.Injector, engineSvc *engine.Service) error {
	sess := do.MustInvoke[*session.Service](di)
	_, ok := engineSvc.Result()

	summary := report.NewSummary(sess.EpisodeID(), ok, sess.Aggregator().Finished())
	fmt.Fprint(cmd.OutOrStdout(), summary.Render())

	slog.Info("Episode finished",
		"episode", summary.EpisodeID,
		"events", summary.Total(),
		"written", ok,
		"telegram", true)

	if !ok {
		return oops.With("episode", summary.EpisodeID).Errorf("episode was not written")
	}

	return nil
}
