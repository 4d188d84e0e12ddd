// Command quicknote is the one-shot capture utility: it reads a note from
// its arguments, stdin, or the clipboard and pushes it straight to the
// configured OneNote section. No local state beyond the token cache.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"tableflip.dev/inkpad/pkg/graph"
	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/render"
	"tableflip.dev/inkpad/pkg/store"
)

func main() {
	title := flag.String("title", "", "title for the note")
	fromClipboard := flag.Bool("from-clipboard", false, "take the note text from the clipboard")
	flag.Parse()

	text, err := noteText(*fromClipboard, flag.Args())
	if err != nil {
		log.Fatalf("quicknote: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatal("quicknote: nothing to send")
	}

	cfg, err := store.LoadConfig()
	if err != nil {
		log.Fatalf("quicknote: %v", err)
	}
	gs := cfg.Graph()

	ctx := context.Background()
	client, err := graph.Connect(ctx, graph.Settings{
		ClientID:  gs.ClientID,
		Tenant:    gs.Tenant,
		TokenFile: gs.TokenFile,
	}, func(uri, code string) {
		fmt.Printf("To sign in, visit %s and enter the code %s\n", uri, code)
	})
	if err != nil {
		log.Fatalf("quicknote: %v", err)
	}

	sectionID, err := client.EnsureSection(ctx, gs.Notebook, gs.Section)
	if err != nil {
		log.Fatalf("quicknote: %v", err)
	}

	pg := page.New(*title)
	if pg.Title == "" {
		pg.Title = "Quick Note"
	}
	pg.Children = append(pg.Children, page.NewText(text, 0, 0, 14, ""))

	if err := client.CreatePage(ctx, sectionID, render.HTML(pg, ""), nil); err != nil {
		log.Fatalf("quicknote: %v", err)
	}
	fmt.Printf("sent %q to %s / %s\n", pg.Title, gs.Notebook, gs.Section)
}

// noteText resolves the note body: clipboard, arguments, or stdin when
// neither is given.
func noteText(fromClipboard bool, args []string) (string, error) {
	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	fmt.Fprintln(os.Stderr, "reading note from stdin, ^D to finish")
	var b strings.Builder
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteString("\n")
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
