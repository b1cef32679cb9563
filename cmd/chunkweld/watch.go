package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
	"github.com/avolokita/chunkweld/internal/watch"
)

func watchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a tree and reassemble whenever chunk files settle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			fsys := fs.NewOSFS()

			cfg, err := config.Load(fsys, root)
			if err != nil {
				return err
			}

			run := func() {
				r := chunk.New(fsys, logger, chunk.Options{
					Extensions: cfg.Extensions,
					KeepParts:  cfg.KeepParts,
				})
				res, rerr := r.Run(root)
				if rerr != nil {
					logger.Error("reassembly run failed", zap.Error(rerr))
					return
				}
				if res.Failed() {
					logger.Error("found chunk files but reassembled none",
						zap.Int("chunks", res.ChunksFound))
				}
			}

			w, err := watch.New(root, debounce, logger, run)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			w.Stop()

			logger.Info("watch stopped")
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a reassembly run")

	return cmd
}
