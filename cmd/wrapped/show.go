package main

import (
	"fmt"

	"github.com/Zuo-Peng/chat-wrapped/internal/render"
	"github.com/Zuo-Peng/chat-wrapped/internal/tui"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <archive>",
		Short: "Step through your year as slides",
		Long:  `Opens a full-screen slideshow when stdout is a terminal. Press c on the last slide to copy the share text. Piped output falls back to the text report.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runReport(cmd, args[0])
			if err != nil {
				return err
			}
			if isTerminal() && len(render.Slides(report, 0)) > 0 {
				return tui.RunSlides(report)
			}
			fmt.Print(render.Text(report, terminalWidth()))
			return nil
		},
	}
}
