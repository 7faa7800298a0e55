package owlfile

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"semlog/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// Writer stores episode documents as <dir>/Episodes/<episode>_ED.owl.
type Writer struct {
	dir       string
	overwrite bool
}

func New(di *do.Injector) (*Writer, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewWriter(cfg.Episode.Directory, cfg.Episode.Overwrite), nil
}

func NewWriter(dir string, overwrite bool) *Writer {
	return &Writer{
		dir:       dir,
		overwrite: overwrite,
	}
}

func (w *Writer) Path(episodeID string) string {
	return filepath.Join(w.dir, "Episodes", episodeID+"_ED.owl")
}

func (w *Writer) Write(episodeID, text string) error {
	errb := oops.In("owlfile").With("episode", episodeID)

	if episodeID == "" {
		return errb.Errorf("episode id is empty")
	}

	path := w.Path(episodeID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errb.Wrapf(err, "failed to create episodes directory")
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errb.With("path", path).Errorf("episode document already exists")
		}
		return errb.With("path", path).Wrapf(err, "failed to open episode document")
	}

	if err = writeAndClose(file, text); err != nil {
		return errb.With("path", path).Wrapf(err, "failed to write episode document")
	}

	slog.Info("Episode document written", "path", path, "bytes", len(text))

	return nil
}

// writeAndClose writes text and closes f. A failed close is reported.
func writeAndClose(f io.WriteCloser, text string) error {
	if _, err := io.WriteString(f, text); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
