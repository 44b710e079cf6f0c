package main

import (
	"fmt"

	"github.com/Zuo-Peng/chat-wrapped/internal/render"
	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	var hitSeq int
	var context int
	var query string
	var width int

	cmd := &cobra.Command{
		Use:   "preview <archive> <conversation-id>",
		Short: "Preview a conversation with context around a hit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := settings(cmd)
			if err != nil {
				return err
			}
			files, err := openArchive(args[0])
			if err != nil {
				return err
			}
			defer files.Close()

			db, err := buildIndex(files, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			out, _, err := render.RenderConversation(db, args[1], render.Options{
				HitSeq:  hitSeq,
				Context: context,
				Width:   width,
				Query:   query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message seq to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show (-1 = all)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")

	return cmd
}
