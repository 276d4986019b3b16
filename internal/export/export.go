// Package export pairs the recorded media artifact with its WebVTT
// transcript on disk, under a shared base filename.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/livecap/livecap/internal/capture"
)

// ErrNothingToExport is returned when an export is requested before any
// recording finished.
var ErrNothingToExport = errors.New("nothing to export: record something first")

// Paths are the two files a successful export produced.
type Paths struct {
	Media    string
	Subtitle string
}

// Save copies the artifact to <dir>/<base>.<ext> — extension chosen by the
// artifact MIME type — and writes the subtitle document to <dir>/<base>.vtt.
// The subtitle is written first so a copy failure cannot leave media without
// captions silently.
func Save(dir, base string, artifact capture.Artifact, vttDocument string) (Paths, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return Paths{}, errors.New("export base name is required")
	}
	if artifact.Path == "" {
		return Paths{}, ErrNothingToExport
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create export directory %s: %w", dir, err)
	}

	paths := Paths{
		Media:    filepath.Join(dir, base+"."+artifact.Extension()),
		Subtitle: filepath.Join(dir, base+".vtt"),
	}

	if err := os.WriteFile(paths.Subtitle, []byte(vttDocument), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write subtitle file: %w", err)
	}

	if err := copyFile(artifact.Path, paths.Media); err != nil {
		_ = os.Remove(paths.Subtitle)
		return Paths{}, fmt.Errorf("copy media artifact: %w", err)
	}

	return paths, nil
}

func copyFile(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
