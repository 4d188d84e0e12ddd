// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/inkpad/pkg/timeutil"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of the page.")
}

// NoteOptions capture the content flags shared by add and push.
type NoteOptions struct {
	Title         string
	FromClipboard bool
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title for the page.")
	cmd.Flags().BoolVar(&o.FromClipboard, "from-clipboard", false,
		"Take the note text from the system clipboard.")
}

// ReminderOptions
type ReminderOptions struct {
	InString string
	AtString string
}

func AddReminderArgs(cmd *cobra.Command, o *ReminderOptions) {
	cmd.Flags().StringVar(&o.InString, "in", "",
		`Fire the reminder after a delay, example: --in="2h30m".`)
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`Fire the reminder at a time, example: --at="09:30".`)
}

// GetAt resolves the --in / --at flags to an absolute time. Both unset
// means no reminder.
func (o *ReminderOptions) GetAt(now time.Time) (time.Time, error) {
	if o.InString != "" {
		d, _, err := timeutil.ParseOffset(o.InString)
		if err != nil {
			return time.Time{}, err
		}
		return now.Add(d), nil
	}
	if o.AtString != "" {
		return timeutil.ParseAt(o.AtString, now)
	}
	return time.Time{}, nil
}
