package stamp

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Storage is the subset of afs.Service the updater needs.
type Storage interface {
	Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error)
	DownloadWithURL(ctx context.Context, URL string, options ...storage.Option) ([]byte, error)
	Upload(ctx context.Context, URL string, mode os.FileMode, reader io.Reader, options ...storage.Option) error
}

// NewStorage returns the default afs service. It serves local paths, file://
// and mem:// URLs.
func NewStorage() Storage {
	return afs.New()
}

// DocumentURL joins the document name onto root. Root may be a local path or
// any URL afs understands.
func DocumentURL(root, document string) string {
	if document == "" {
		document = DefaultDocument
	}
	if url.Scheme(root, "") == "" {
		return filepath.Join(root, document)
	}
	return url.Join(root, document)
}
