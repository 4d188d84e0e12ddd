package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/runner/remove"
	"tableflip.dev/inkpad/pkg/store"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "delete a saved page",
		Aliases: []string{"rm", "remove", "close"},
		Example: `
inkpad delete 1f3b8a
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := remove.Remove{
				ID:          args[0],
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
