package main

import (
	"github.com/Zuo-Peng/chat-wrapped/internal/search"
	"github.com/Zuo-Peng/chat-wrapped/internal/tui"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var role, since, until string
	var limit int

	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "Browse the year's conversations, newest first",
		Long:  `Opens a TUI panel listing every conversation of the target year. Type to switch to full-text search. Piped output is TSV.`,
		Args:  cobra.ExactArgs(1),
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

			sopts := search.Options{
				Role:  role,
				Since: since,
				Until: until,
				Limit: limit,
			}
			if isTerminal() {
				return tui.RunList(db, sopts, opts.Year)
			}

			results, err := search.ListAll(db, sopts)
			if err != nil {
				return err
			}
			printResults(results)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Only conversations with a message from this role")
	cmd.Flags().StringVar(&since, "since", "", "Only conversations created since date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Only conversations created before date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
