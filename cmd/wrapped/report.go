package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-wrapped/internal/render"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runReport(cmd *cobra.Command, archivePath string) (*stats.Report, error) {
	_, opts, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	files, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer files.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return stats.NewEngine(logger).Run(ctx, files, opts)
}

func reportCmd() *cobra.Command {
	var format string
	var width int

	cmd := &cobra.Command{
		Use:   "report <archive>",
		Short: "Print the wrapped statistics for an export (zip or folder)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runReport(cmd, args[0])
			if err != nil {
				return err
			}
			if width <= 0 {
				width = terminalWidth()
			}

			switch format {
			case "text":
				fmt.Print(render.Text(report, width))
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml":
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			case "markdown", "md":
				md := render.Markdown(report)
				if !isTerminal() {
					fmt.Print(md)
					return nil
				}
				out, err := render.Glamour(md, width)
				if err != nil {
					return err
				}
				fmt.Print(out)
			default:
				return fmt.Errorf("unknown format %q (text, json, yaml, markdown)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml, markdown")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (default terminal width)")

	return cmd
}
