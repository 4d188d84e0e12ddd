package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/commands/options"
	"tableflip.dev/inkpad/pkg/runner/push"
	"tableflip.dev/inkpad/pkg/store"
)

func addPush(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	id := ""

	cmd := &cobra.Command{
		Use:   "push [text]",
		Short: "send a page to OneNote",
		Long: "Push a saved page (--id) or a quick note built from the given text " +
			"to the configured OneNote section.",
		Example: `
inkpad push "remember the milk"
inkpad push --from-clipboard
inkpad push --id 1f3b8a
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := push.Push{
				ID:            id,
				Title:         no.Title,
				Text:          strings.Join(args, " "),
				FromClipboard: no.FromClipboard,
				Settings:      cfg.Graph(),
				Persistence:   p,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&id, "id", "",
		"Push a saved page by id instead of ad-hoc text.")
	options.AddNoteArgs(cmd, no)

	topLevel.AddCommand(cmd)
}
