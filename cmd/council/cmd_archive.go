package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/store"
)

func newArchiveCommand() *cobra.Command {
	var (
		dataDir     string
		archivePath string
		restore     bool
	)

	cmd := &cobra.Command{
		Use:   "archive <conversation-id | archive-file>",
		Short: "Archive or restore a conversation",
		Long: `Archive a conversation as a compressed snapshot, or restore one.

Without --restore, the argument is a conversation id and a zstd-compressed
snapshot is written next to the current directory (or to --output).

With --restore, the argument is an archive file; the conversation is
written back into the store, overwriting any existing one with the same
id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			convs, err := store.NewFileStore(dataDir)
			if err != nil {
				return err
			}

			if restore {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open archive: %w", err)
				}
				defer f.Close() //nolint:errcheck

				conv, err := store.ReadArchive(f)
				if err != nil {
					return err
				}
				if err := convs.Restore(conv); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored conversation %s (%d turns)\n", conv.ID, len(conv.Turns)) //nolint:errcheck
				return nil
			}

			id := args[0]
			out := archivePath
			if out == "" {
				out = id + ".council.zst"
			}
			if err := convs.ArchiveFile(id, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived conversation %s to %s\n", id, out) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "conversations", "Directory for conversation files")
	cmd.Flags().StringVarP(&archivePath, "output", "o", "", "Archive file to write (default: <id>.council.zst)")
	cmd.Flags().BoolVar(&restore, "restore", false, "Restore a conversation from an archive file")

	return cmd
}
