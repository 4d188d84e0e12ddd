package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "inkpad",
		Short: base.Wrap80("Sticky ink pages with reminders, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addRename(topLevel)
	addDelete(topLevel)
	addRemind(topLevel)
	addExport(topLevel)
	addPush(topLevel)
	addVersion(topLevel)
}
