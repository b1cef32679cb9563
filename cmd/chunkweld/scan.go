package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [dir]",
		Short: "Report chunk files present in a tree without touching them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			fsys := fs.NewOSFS()

			cfg, err := config.Load(fsys, root)
			if err != nil {
				return err
			}

			r := chunk.New(fsys, logger, chunk.Options{Extensions: cfg.Extensions})
			sets, found, err := r.Discover(root)
			if err != nil {
				return err
			}

			if found == 0 {
				fmt.Println("no chunk files found")
				return nil
			}

			fmt.Printf("found %d chunk files across %d base paths\n", found, len(sets))
			for _, s := range sets {
				fmt.Printf("  %s: %d parts, %d bytes\n", s.Base, len(s.Parts), s.TotalSize())
			}
			return nil
		},
	}
}
