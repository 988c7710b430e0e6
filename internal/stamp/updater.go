package stamp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/viant/afs/file"
)

// DefaultDocument is the document updated when Request.Document is empty.
const DefaultDocument = "README.md"

var (
	// ErrDocumentNotFound means nothing exists at the resolved document URL.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrMarkersNotFound means the document lacks a usable marker block.
	ErrMarkersNotFound = errors.New("markers not found")
	// ErrReplacementCount means a rewrite did not replace exactly one block.
	ErrReplacementCount = errors.New("unexpected replacement count")
)

// Request describes one update of a document.
type Request struct {
	// Root is the directory or URL the document is resolved against.
	Root string
	// Document defaults to DefaultDocument.
	Document string

	RunStartedAt string
	Now          time.Time

	DryRun bool
}

// Result reports the outcome of a successful Update.
type Result struct {
	URL       string
	Timestamp string
	Changed   bool
	Written   bool
}

// String is the line printed for the outcome.
func (res Result) String() string {
	switch {
	case !res.Changed:
		return "README already up to date (no changes)."
	case !res.Written:
		return "README would be updated: " + res.Timestamp
	default:
		return "README updated: " + res.Timestamp
	}
}

// Updater rewrites marker blocks in documents held by Storage.
type Updater struct {
	Storage Storage
	Logger  *log.Logger
}

// New returns an Updater; a nil logger discards output.
func New(storage Storage, logger *log.Logger) *Updater {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Updater{Storage: storage, Logger: logger}
}

// Update rewrites the first marker block of the document with a fresh
// timestamp. The document is only written when its content changes.
func (u *Updater) Update(ctx context.Context, req Request) (Result, error) {
	documentURL := DocumentURL(req.Root, req.Document)
	res := Result{URL: documentURL}

	text, err := u.read(ctx, documentURL)
	if err != nil {
		return res, err
	}

	if strings.TrimSpace(req.RunStartedAt) != "" {
		u.Logger.Printf("using %s=%s", RunStartedAtEnv, req.RunStartedAt)
	} else {
		u.Logger.Println("using local clock")
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	res.Timestamp, err = FormatTimestamp(req.RunStartedAt, now)
	if err != nil {
		return res, err
	}

	updated, n := ReplaceFirst(string(text), Block(res.Timestamp))
	if n != 1 {
		return res, fmt.Errorf("%w: expected to replace 1 block, replaced %d blocks", ErrReplacementCount, n)
	}

	if updated == string(text) {
		return res, nil
	}
	res.Changed = true
	if req.DryRun {
		return res, nil
	}
	if err := u.Storage.Upload(ctx, documentURL, file.DefaultFileOsMode, strings.NewReader(updated)); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", documentURL, err)
	}
	res.Written = true
	u.Logger.Printf("wrote %s", documentURL)
	return res, nil
}

// Current returns the marker block stored in the document. An end marker that
// only occurs before the start marker is reported as ErrMarkersNotFound.
func (u *Updater) Current(ctx context.Context, root, document string) (string, error) {
	text, err := u.read(ctx, DocumentURL(root, document))
	if err != nil {
		return "", err
	}
	span, ok := Locate(string(text), StartMarker, EndMarker)
	if !ok {
		return "", fmt.Errorf("%w: %s must come before %s", ErrMarkersNotFound, StartMarker, EndMarker)
	}
	return string(text[span.Start:span.End]), nil
}

func (u *Updater) read(ctx context.Context, documentURL string) ([]byte, error) {
	u.Logger.Printf("reading %s", documentURL)
	exists, err := u.Storage.Exists(ctx, documentURL)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w at: %s", ErrDocumentNotFound, documentURL)
	}
	text, err := u.Storage.DownloadWithURL(ctx, documentURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", documentURL, err)
	}
	if !HasMarkers(string(text)) {
		return nil, fmt.Errorf("%w: make sure the document contains:\n%s\n...\n%s", ErrMarkersNotFound, StartMarker, EndMarker)
	}
	return text, nil
}
