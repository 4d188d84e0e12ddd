package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/commands/options"
	"tableflip.dev/inkpad/pkg/runner/add"
	"tableflip.dev/inkpad/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	ro := &options.ReminderOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "add a reminder page",
		Long: "Add a page with a scheduled reminder. " +
			"Pages without a reminder are not kept locally; use push to send those to OneNote.",
		Example: `
inkpad add "stand-up" --in 15m
inkpad add "call dentist" --at 09:30
inkpad add --from-clipboard --in 1h --title "follow up"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := ro.GetAt(time.Now())
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := add.Add{
				Title:         no.Title,
				Text:          strings.Join(args, " "),
				FromClipboard: no.FromClipboard,
				At:            at,
				Persistence:   p,
			}
			return s.Do(context.Background())
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddReminderArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
