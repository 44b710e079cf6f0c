package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/search"
	"github.com/Zuo-Peng/chat-wrapped/internal/tui"
	"github.com/spf13/cobra"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeRole(role string) string {
	switch role {
	case "user":
		return sColorBlue + role + sColorReset
	case "assistant":
		return sColorGreen + role + sColorReset
	default:
		return role
	}
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func tsvField(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func printResults(results []search.Result) {
	for _, r := range results {
		title := tsvField(r.Title)
		if title == "" {
			title = "-"
		}
		// first two fields (convKey, seq) stay plain for fzf {1} {2}
		fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\t%s\n",
			r.ConvKey,
			r.Seq,
			sColorDim, r.Ts, sColorReset,
			colorizeRole(r.Role),
			title,
			colorizeSnippet(tsvField(r.Snippet)),
		)
	}
}

func searchCmd() *cobra.Command {
	var role, since, until string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <archive> <query>",
		Short: "Full-text search across the year's conversations",
		Long: `Search the conversations of the target year using FTS5 (LIKE for CJK).
The index lives in memory for this run only. In the browser, tab cycles the
role filter and ctrl+p/ctrl+n step through the months of the year.
Output is TSV for fzf integration:
  conversationId, messageSeq, timestamp, role, title, snippet

Example shell function:
  wsearch() {
    wrapped search ~/export.zip "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview 'wrapped preview ~/export.zip {1} --hit {2} --context 5 --query {q}' \
      --preview-window=right:60%:wrap
  }`,
		Args: cobra.ExactArgs(2),
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

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if isTerminal() {
				return tui.Run(db, args[1], sopts, opts.Year)
			}

			sopts.Query = args[1]
			results, err := search.Search(db, sopts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}
			printResults(results)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by role (user/assistant/tool)")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages since date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Filter messages before date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
