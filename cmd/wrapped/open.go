package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Zuo-Peng/chat-wrapped/internal/open"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var viewer string

	cmd := &cobra.Command{
		Use:   "open <archive> [n]",
		Short: "Open the n-th generated image in a viewer; without n, list them",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := settings(cmd)
			if err != nil {
				return err
			}
			files, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer files.Close()

			if len(args) == 1 {
				images := files.GeneratedImages()
				if len(images) == 0 {
					fmt.Fprintln(os.Stderr, "No generated images found.")
					return nil
				}
				for i, f := range images {
					fmt.Printf("%d\t%s\t%s\n", i+1, humanize.Bytes(uint64(f.Size)), f.Path)
				}
				return nil
			}

			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("image number %q: %w", args[1], err)
			}
			if viewer == "" {
				viewer = cfg.Viewer
			}
			path, err := open.OpenImage(files, n, viewer)
			if path != "" {
				fmt.Fprintf(os.Stderr, "Extracted to %s\n", path)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&viewer, "viewer", "", "Viewer command (default from config, $VIEWER, xdg-open)")

	return cmd
}
