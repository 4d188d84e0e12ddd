// Package store persists pages one directory per page: a metadata record,
// an optional strokes artifact, and one PNG per image element. Every
// operation is best-effort; a page that fails to load is skipped, never
// fatal to the caller.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
)

const (
	metaFile    = "meta.json"
	strokesFile = "strokes.json"
	imagePrefix = "image_"
)

// Persistence defines the persistence contract for pages.
type Persistence interface {
	Save(p *page.Page) error
	Load(storageID string) (*page.Page, error)
	LoadAll(ctx context.Context) []*page.Page
	Delete(p *page.Page) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// metaRecord is the on-disk metadata shape. Image bytes live in sibling
// files referenced by name; text elements are inlined.
type metaRecord struct {
	StorageID   string          `json:"storageId"`
	Title       string          `json:"title"`
	NoteType    page.NoteType   `json:"noteType"`
	TargetTime  *page.Timestamp `json:"targetTime,omitempty"`
	HasReminded bool            `json:"hasReminded"`
	Created     page.Timestamp  `json:"createdAt"`
	Modified    page.Timestamp  `json:"modifiedAt"`
	Children    []childRecord   `json:"children"`
}

type childRecord struct {
	ID   string           `json:"id,omitempty"`
	Type page.ElementKind `json:"type"`
	Left float64          `json:"left"`
	Top  float64          `json:"top"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Foreground string  `json:"foregroundColor,omitempty"`

	ImageFile string  `json:"imageFile,omitempty"`
	MaxWidth  float64 `json:"maxWidth,omitempty"`
	MaxHeight float64 `json:"maxHeight,omitempty"`
}

// Save writes the page's directory, fully overwriting the metadata record.
// The strokes artifact is omitted when the page has no strokes, image
// files are numbered sequentially per save, and artifacts left over from a
// previous save are garbage collected.
func (p *persistence) Save(pg *page.Page) error {
	if pg == nil || pg.StorageID == "" {
		return errors.New("store: page has no storage id")
	}

	written := map[string]bool{}

	if len(pg.Strokes) > 0 {
		data, err := json.Marshal(pg.Strokes)
		if err != nil {
			return fmt.Errorf("store: encode strokes: %w", err)
		}
		key := pg.StorageID + "/" + strokesFile
		if err := p.d.Write(key, data); err != nil {
			return fmt.Errorf("store: write strokes: %w", err)
		}
		written[key] = true
	}

	rec := metaRecord{
		StorageID:   pg.StorageID,
		Title:       pg.Title,
		NoteType:    pg.NoteType,
		TargetTime:  pg.TargetTime,
		HasReminded: pg.HasReminded,
		Created:     pg.Created,
		Modified:    pg.Modified,
		Children:    make([]childRecord, 0, len(pg.Children)),
	}

	imageIndex := 0
	for _, child := range pg.Children {
		cr := childRecord{
			ID:   child.ID,
			Type: child.Kind,
			Left: child.Left,
			Top:  child.Top,
		}
		switch child.Kind {
		case page.ElementText:
			cr.Text = child.Text
			cr.FontSize = child.FontSize
			cr.Foreground = child.Foreground
		case page.ElementImage:
			name := fmt.Sprintf("%s%d.png", imagePrefix, imageIndex)
			imageIndex++
			key := pg.StorageID + "/" + name
			if err := p.d.Write(key, child.ImageData); err != nil {
				return fmt.Errorf("store: write %s: %w", name, err)
			}
			written[key] = true
			cr.ImageFile = name
			cr.MaxWidth = child.MaxWidth
			cr.MaxHeight = child.MaxHeight
		}
		rec.Children = append(rec.Children, cr)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode metadata: %w", err)
	}
	metaKey := pg.StorageID + "/" + metaFile
	if err := p.d.Write(metaKey, data); err != nil {
		return fmt.Errorf("store: write metadata: %w", err)
	}
	written[metaKey] = true

	// Image numbering is not stable across saves, so a prior save may have
	// left files this save no longer references. Collect the garbage.
	prefix := pg.StorageID + "/"
	for key := range p.d.Keys(nil) {
		if strings.HasPrefix(key, prefix) && !written[key] {
			if err := p.d.Erase(key); err != nil {
				fmt.Fprintf(os.Stderr, "store: erase stale %s: %v\n", key, err)
			}
		}
	}
	return nil
}

// Load reconstructs a single page from its directory.
func (p *persistence) Load(storageID string) (*page.Page, error) {
	data, err := p.d.Read(storageID + "/" + metaFile)
	if err != nil {
		return nil, fmt.Errorf("store: read metadata for %s: %w", storageID, err)
	}
	rec := metaRecord{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("store: decode metadata for %s: %w", storageID, err)
	}
	// The directory name wins over whatever the record claims.
	rec.StorageID = storageID

	pg := &page.Page{
		StorageID:   rec.StorageID,
		Title:       rec.Title,
		NoteType:    rec.NoteType,
		TargetTime:  rec.TargetTime,
		HasReminded: rec.HasReminded,
		Created:     rec.Created,
		Modified:    rec.Modified,
	}
	if pg.NoteType == "" {
		pg.NoteType = page.TypeNormal
	}

	strokesKey := storageID + "/" + strokesFile
	if p.d.Has(strokesKey) {
		raw, err := p.d.Read(strokesKey)
		if err == nil {
			var strokes []ink.Stroke
			if err := json.Unmarshal(raw, &strokes); err != nil {
				fmt.Fprintf(os.Stderr, "store: decode strokes for %s: %v\n", storageID, err)
			} else {
				pg.Strokes = strokes
			}
		} else {
			fmt.Fprintf(os.Stderr, "store: read strokes for %s: %v\n", storageID, err)
		}
	}

	for _, cr := range rec.Children {
		switch cr.Type {
		case page.ElementText:
			el := page.NewText(cr.Text, cr.Left, cr.Top, cr.FontSize, cr.Foreground)
			if cr.ID != "" {
				el.ID = cr.ID
			}
			pg.Children = append(pg.Children, el)
		case page.ElementImage:
			raw, err := p.d.Read(storageID + "/" + cr.ImageFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "store: read %s for %s: %v\n", cr.ImageFile, storageID, err)
				continue
			}
			el := page.NewImage(raw, cr.Left, cr.Top, cr.MaxWidth, cr.MaxHeight)
			if cr.ID != "" {
				el.ID = cr.ID
			}
			pg.Children = append(pg.Children, el)
		default:
			fmt.Fprintf(os.Stderr, "store: %s: unknown child type %q\n", storageID, cr.Type)
		}
	}

	return pg, nil
}

// LoadAll scans the storage root and reconstructs every readable page.
// Directories without a parseable metadata record are skipped with a
// warning; one bad page never aborts the rest. Ordering is advisory.
func (p *persistence) LoadAll(ctx context.Context) []*page.Page {
	all := make([]*page.Page, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if pk.FileName != metaFile || len(pk.Path) == 0 {
			continue
		}
		id := pk.Path[len(pk.Path)-1]
		pg, err := p.Load(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, pg)
	}
	sortPages(all)
	return all
}

// Delete removes the page's directory recursively. Deleting an absent
// directory is not an error.
func (p *persistence) Delete(pg *page.Page) error {
	if pg == nil || pg.StorageID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(p.basePath, pg.StorageID))
}

func sortPages(pages []*page.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		left := pages[i]
		right := pages[j]
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.StorageID < right.StorageID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.StorageID < right.StorageID
			}
			return lt.Before(rt)
		}
	})
}

// Keys are `<storageId>/<file>`, mapping straight onto the page directory.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
