package main

import (
	"fmt"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor <archive>",
		Short: "Self-check: verify archive contents, decoding, year filter and FTS5",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := settings(cmd)
			if err != nil {
				return err
			}

			fmt.Println("=== Settings ===")
			fmt.Printf("  Year: %d (strict: %t)\n", opts.Year, opts.StrictYear)
			fmt.Printf("  Time zone: %s\n", opts.Location)
			fmt.Printf("  Viewer: %s\n", cfg.Viewer)

			fmt.Println("\n=== Archive ===")
			kind := "directory"
			if archive.IsZip(args[0]) {
				kind = "zip"
			}
			fmt.Printf("  Path: %s (%s)\n", args[0], kind)
			files, err := openArchive(args[0])
			if err != nil {
				fmt.Printf("  Status: %v\n", err)
				return nil
			}
			defer files.Close()
			fmt.Printf("  Files: %d\n", files.Len())

			checkFile("conversations.json", files.Conversations)
			checkFile("sora.json", files.Sora)
			fmt.Printf("  Generated images: %d\n", len(files.GeneratedImages()))

			fmt.Println("\n=== Conversations ===")
			f, err := files.Conversations()
			if err != nil {
				fmt.Println("  Status: SKIPPED (no conversations.json)")
				return nil
			}
			convs, err := decodeFile(f)
			if err != nil {
				fmt.Printf("  Decode: FAILED (%v)\n", err)
				return nil
			}
			lower := parse.YearWindow(opts.Year, opts.Location, false).Filter(convs)
			strict := parse.YearWindow(opts.Year, opts.Location, true).Filter(convs)
			fmt.Printf("  Decoded: %d\n", len(convs))
			fmt.Printf("  Since %d-01-01: %d\n", opts.Year, len(lower))
			fmt.Printf("  Within %d: %d\n", opts.Year, len(strict))

			selected := lower
			if opts.StrictYear {
				selected = strict
			}

			fmt.Println("\n=== FTS5 ===")
			db, err := index.OpenMemory()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
				return nil
			}
			defer db.Close()
			st, err := index.Build(db, selected, opts.Location, logger)
			if err != nil {
				fmt.Printf("  Index error: %v\n", err)
				return nil
			}
			fmt.Printf("  Indexed: %s\n", st)

			msgCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == msgCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", msgCount, ftsCount)
				}
			}
			return nil
		},
	}
}

func checkFile(name string, find func() (archive.File, error)) {
	f, err := find()
	if err != nil {
		fmt.Printf("  %s: NOT FOUND\n", name)
		return
	}
	fmt.Printf("  %s: %s (%s)\n", name, f.Path, humanize.Bytes(uint64(f.Size)))
}

func decodeFile(f archive.File) ([]parse.Conversation, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	convs, err := parse.DecodeConversations(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return convs, nil
}

