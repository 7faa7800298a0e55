package timeline

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"semlog/app/config"
	"semlog/app/event"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

// Writer exports finished events as one JSON lines file per event kind:
// <dir>/Episodes/<episode>_<Kind>_TL.jsonl
type Writer struct {
	dir string
}

func New(di *do.Injector) (*Writer, error) {
	return NewWriter(do.MustInvoke[*config.Config](di).Episode.Directory), nil
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) Path(episodeID string, kind event.Kind) string {
	return filepath.Join(w.dir, "Episodes", episodeID+"_"+kind.String()+"_TL.jsonl")
}

func (w *Writer) Write(episodeID string, events []event.Event) error {
	if episodeID == "" {
		return oops.In("timeline").Errorf("episode id is empty")
	}

	for _, kind := range event.Kinds() {
		ofKind := pie.Filter(events, func(ev event.Event) bool {
			return ev.Details != nil && ev.Kind() == kind
		})
		if len(ofKind) == 0 {
			continue
		}

		entries := pie.Map(ofKind, func(ev event.Event) Entry {
			return Entry{
				ID:      ev.ID,
				Kind:    kind.String(),
				Context: ev.Context(),
				Tooltip: ev.Tooltip(),
				Start:   ev.StartTime,
				End:     ev.EndTime,
				PairID:  ev.PairID,
			}
		})

		if err := w.save(w.Path(episodeID, kind), entries); err != nil {
			return oops.In("timeline").With("episode", episodeID, "kind", kind.String()).Wrap(err)
		}
	}

	return nil
}

func (w *Writer) save(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return oops.Errorf("failed to create timeline directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return oops.Errorf("failed to create/open timeline file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return oops.Errorf("failed to marshal timeline entry: %w", err)
		}
		if _, err = writer.WriteString(string(data) + "\n"); err != nil {
			return oops.Errorf("failed to write timeline entry: %w", err)
		}
	}

	if err = writer.Flush(); err != nil {
		return oops.Errorf("failed to flush writer: %w", err)
	}

	slog.Debug("Timeline written", "path", path, "entries", len(entries))

	return nil
}

// Read loads a timeline file written by Write.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, oops.Errorf("failed to open timeline file: %w", err)
	}
	defer file.Close()

	var entries []Entry

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e Entry
		if err = json.Unmarshal([]byte(line), &e); err != nil {
			return nil, oops.Errorf("failed to parse JSON line: %w", err)
		}
		entries = append(entries, e)
	}

	if err = scanner.Err(); err != nil {
		return nil, oops.Errorf("error reading timeline file: %w", err)
	}

	return entries, nil
}
