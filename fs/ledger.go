// Package fs persists run state and configuration as files on local disk.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/dropwatch"
)

// DefaultLedgerPath is where the seen set lives unless configured otherwise.
const DefaultLedgerPath = "data/seen_urls.json"

// Ensure Ledger implements dropwatch.Ledger at compile time.
var _ dropwatch.Ledger = (*Ledger)(nil)

// Ledger stores the seen set as a sorted JSON array of links.
// Saves are atomic: the array is written to a temporary file beside the
// ledger and renamed over it.
type Ledger struct {
	path    string
	corrupt bool
}

// NewLedger creates a Ledger backed by the file at path.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Corrupt reports whether the last Load found unreadable content and
// started from an empty set.
func (l *Ledger) Corrupt() bool {
	return l.corrupt
}

// Load reads the ledger. A missing file is created empty along with its
// parent directories. Unparseable content yields an empty set.
func (l *Ledger) Load(_ context.Context) (*dropwatch.SeenSet, error) {
	l.corrupt = false

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := l.write(nil); err != nil {
			return nil, err
		}
		return dropwatch.NewSeenSet(), nil
	} else if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		l.corrupt = true
		return dropwatch.NewSeenSet(), nil
	}
	return dropwatch.NewSeenSet(links...), nil
}

// Save overwrites the ledger with the sorted members of s. It writes even
// when ctx is done so progress made before a cancellation is kept.
func (l *Ledger) Save(_ context.Context, s *dropwatch.SeenSet) error {
	return l.write(s.Sorted())
}

func (l *Ledger) write(links []string) error {
	if links == nil {
		links = []string{}
	}
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}
