package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/timeutil"
)

// PrettyPrint renders page listings for the terminal.
type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Pages prints the open set as a table, marking the current page and the
// state of any reminder.
func (pp *PrettyPrint) Pages(pages []*page.Page, currentID string) {
	if len(pages) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 40
	if pp.ShowID {
		table.AddRow("", "ID", "TITLE", "TYPE", "REMINDER", "CONTENT")
	} else {
		table.AddRow("", "TITLE", "TYPE", "REMINDER", "CONTENT")
	}

	for _, pg := range pages {
		marker := " "
		if pg.StorageID == currentID {
			marker = "*"
		}
		content := fmt.Sprintf("%d strokes, %d elements", len(pg.Strokes), len(pg.Children))
		if pp.ShowID {
			table.AddRow(marker, pg.StorageID, pg.Title, string(pg.NoteType), pp.reminder(pg), content)
		} else {
			table.AddRow(marker, pg.Title, string(pg.NoteType), pp.reminder(pg), content)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// Alarm prints a fired reminder popup line.
func (pp *PrettyPrint) Alarm(pg *page.Page) {
	a := color.New(color.FgHiRed, color.Bold)
	_, _ = a.Printf("⏰ %s", pg.Title)
	if text := pg.PlainText(); text != "" {
		fmt.Printf(" — %s", text)
	}
	fmt.Println("")
}

func (pp *PrettyPrint) reminder(pg *page.Page) string {
	if pg.NoteType != page.TypeScheduleReminder || pg.TargetTime == nil {
		return ""
	}
	if pg.HasReminded {
		return color.New(color.Faint).Sprint("fired")
	}
	until := time.Until(pg.TargetTime.Time)
	if until <= 0 {
		return color.New(color.FgHiRed).Sprint("due")
	}
	return "in " + timeutil.Format(until)
}
