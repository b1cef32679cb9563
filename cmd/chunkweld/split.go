package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
)

func splitCmd() *cobra.Command {
	var (
		partSize int64
		keep     bool
	)

	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Split a file into numbered parts plus a digest sidecar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			fsys := fs.NewOSFS()

			cfg, err := config.Load(fsys, filepath.Dir(path))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				partSize = cfg.PartSize
			}

			r := chunk.New(fsys, logger, chunk.Options{Extensions: cfg.Extensions})
			parts, err := r.SplitFile(path, partSize, keep)
			if err != nil {
				return err
			}

			for _, p := range parts {
				fmt.Println(p.Path)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&partSize, "size", config.DefaultPartSize, "part size in bytes")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the original file after splitting")

	return cmd
}
