package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/commands/options"
	"tableflip.dev/inkpad/pkg/runner/get"
	"tableflip.dev/inkpad/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	remindersOnly := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "list the saved pages",
		Example: `
inkpad get
inkpad get --reminders
inkpad get --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:        io.ShowID,
				RemindersOnly: remindersOnly,
				Persistence:   p,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&remindersOnly, "reminders", false,
		"Only list pages with a scheduled reminder.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
