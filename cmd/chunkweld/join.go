package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
	"github.com/avolokita/chunkweld/internal/progress"
	"github.com/avolokita/chunkweld/internal/report"
	"github.com/avolokita/chunkweld/internal/structure"
)

func joinCmd() *cobra.Command {
	var (
		keepParts  bool
		reportPath string
		threshold  int
	)

	cmd := &cobra.Command{
		Use:   "join [dir]",
		Short: "Reassemble chunked files in a tree and remove their parts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			fsys := fs.NewOSFS()

			cfg, err := config.Load(fsys, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("keep-parts") {
				cfg.KeepParts = keepParts
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}

			rep := report.New(root)

			bar := progress.NewProgress(0, "Reassembling chunked files")
			r := chunk.New(fsys, logger, chunk.Options{
				Extensions: cfg.Extensions,
				KeepParts:  cfg.KeepParts,
				OnSet:      func(chunk.BaseResult) { bar.Increment() },
			})

			res, err := r.Run(root)
			bar.Finish()
			if err != nil {
				return err
			}
			rep.Finish(res)

			// Advisory only; logged, never gating.
			if sum, serr := structure.Check(fsys, root, structure.Options{Threshold: cfg.Threshold}); serr != nil {
				logger.Warn("structural check failed to run", zap.Error(serr))
			} else {
				logStructure(sum)
			}

			if reportPath != "" {
				if werr := rep.WriteFile(fsys, reportPath); werr != nil {
					logger.Warn("could not write run report",
						zap.String("path", reportPath), zap.Error(werr))
				}
			}

			if res.Failed() {
				return fmt.Errorf("found %d chunk files but reassembled none", res.ChunksFound)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepParts, "keep-parts", false, "leave part files in place after reassembly")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a JSON run report to this path")
	cmd.Flags().IntVar(&threshold, "threshold", config.DefaultThreshold, "categories required for structural completeness")

	return cmd
}

func logStructure(sum *structure.Summary) {
	fields := []zap.Field{
		zap.Int("present", sum.Present),
		zap.Int("threshold", sum.Threshold),
	}
	for _, c := range sum.Categories {
		fields = append(fields, zap.Int(c.Name, c.Count))
	}

	if sum.Complete {
		logger.Info("tree looks structurally complete", fields...)
	} else {
		logger.Warn("tree may be structurally incomplete", fields...)
	}
}
