package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Presenter hands a finished document to the user.
type Presenter interface {
	Present(ctx context.Context, doc Document) error
}

// Notice is a user-visible message about a failed export.
type Notice struct {
	Title   string
	Message string
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// FilePresenter writes the document to Path.
type FilePresenter struct {
	Path string
}

// Present implements Presenter. The file is written only once the whole
// document has been rendered.
func (p FilePresenter) Present(_ context.Context, doc Document) error {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}

// LogNotifier reports notices through a logger, for non-interactive use.
type LogNotifier struct {
	Logger *logrus.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(notice Notice) {
	n.Logger.WithField("title", notice.Title).Error(notice.Message)
}
