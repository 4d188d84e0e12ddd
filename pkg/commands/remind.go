package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/runner/remind"
	"tableflip.dev/inkpad/pkg/store"
)

func addRemind(topLevel *cobra.Command) {
	once := false
	interval := time.Second

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "watch for due reminders and announce them",
		Example: `
inkpad remind
inkpad remind --once
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := remind.Remind{
				Once:        once,
				Interval:    interval,
				Persistence: p,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&once, "once", false,
		"Check once and exit instead of watching.")
	cmd.Flags().DurationVar(&interval, "interval", time.Second,
		"Poll interval while watching.")

	topLevel.AddCommand(cmd)
}
