package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/runner/rename"
	"tableflip.dev/inkpad/pkg/store"
)

func addRename(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "retitle a saved page",
		Example: `
inkpad rename 1f3b8a "groceries"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a page id and a new title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := rename.Rename{
				ID:          args[0],
				Title:       strings.Join(args[1:], " "),
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
