package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
	"github.com/avolokita/chunkweld/internal/structure"
)

func checkCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Advisory structural completeness check of a deploy tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			fsys := fs.NewOSFS()

			cfg, err := config.Load(fsys, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}

			sum, err := structure.Check(fsys, root, structure.Options{Threshold: cfg.Threshold})
			if err != nil {
				return err
			}

			for _, c := range sum.Categories {
				mark := " "
				if c.Present() {
					mark = "x"
				}
				fmt.Printf("[%s] %-10s %d file(s)\n", mark, c.Name, c.Count)
			}

			if sum.Complete {
				fmt.Printf("structurally complete (%d/%d categories present)\n", sum.Present, len(sum.Categories))
			} else {
				fmt.Printf("warning: %d/%d categories present, below threshold %d\n", sum.Present, len(sum.Categories), sum.Threshold)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", config.DefaultThreshold, "categories required for completeness")

	return cmd
}
