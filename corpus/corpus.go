// Package corpus loads a directory of text files into an ordered list of
// shingled documents for the minsim pipeline.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aouyang1/go-minsim"
)

// ErrorPolicy controls what the loader does with a file it cannot read.
type ErrorPolicy int

const (
	// SkipUnreadable logs unreadable files and keeps loading
	SkipUnreadable ErrorPolicy = iota
	// AbortOnError fails the whole load on the first unreadable file
	AbortOnError
)

// Loader walks a directory and turns every .txt file into one shingled
// document. Document IDs follow the sorted directory listing, so they are
// positional and not stable if files are added, removed or renamed between
// runs.
type Loader struct {
	Dir         string
	ShingleSize int
	OnError     ErrorPolicy
	Logger      *slog.Logger
}

// Load reads, normalizes and shingles every .txt file under the loader's
// directory, returning documents in listing order. Zero loadable documents is
// an ErrEmptyCorpus, since an empty result set usually means a misconfigured
// directory rather than a meaningful answer.
func (l *Loader) Load(ctx context.Context) ([]minsim.Document, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	var docs []minsim.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(l.Dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			if l.OnError == AbortOnError {
				return nil, fmt.Errorf("reading document %s: %w", path, err)
			}
			logger.Warn("skipping unreadable document", "path", path, "error", err)
			continue
		}

		shingles, err := minsim.NewShingleSet(Normalize(string(raw)), l.ShingleSize)
		if err != nil {
			return nil, err
		}
		docs = append(docs, minsim.NewDocument(len(docs), entry.Name(), shingles))
	}

	if len(docs) == 0 {
		return nil, minsim.ErrEmptyCorpus
	}
	return docs, nil
}

// asciiPunctuation matches the characters stripped by the normalizer.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize prepares raw text for shingling: punctuation removed, lowercased,
// runs of whitespace collapsed to single spaces. Anything beyond this cleanup
// is out of scope for the loader.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
