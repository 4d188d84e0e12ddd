package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/runner/export"
	"tableflip.dev/inkpad/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	output := ""

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "render a saved page to a PNG file",
		Example: `
inkpad export 1f3b8a
inkpad export 1f3b8a -o groceries.png
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := export.Export{
				ID:          args[0],
				Output:      output,
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Output file, defaults to <id>.png.")

	topLevel.AddCommand(cmd)
}
