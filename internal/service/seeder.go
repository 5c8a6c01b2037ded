package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DocumentIndexer is the narrow slice of the indexer the seeder needs.
type DocumentIndexer interface {
	IndexDocument(ctx context.Context, filename, content string) error
}

var blankRuns = regexp.MustCompile(`\n\s*\n`)

// CleanDocumentText normalizes a raw document for indexing and storage:
// line endings become LF, blank-line runs collapse, and NUL plus
// non-ASCII bytes are dropped (they break the database text encoder).
func CleanDocumentText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 || r > 127 {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Seeder indexes a directory of plain-text documents.
type Seeder struct {
	indexer DocumentIndexer
	dir     string
}

// NewSeeder creates a seeder over the given corpus directory.
func NewSeeder(indexer DocumentIndexer, dir string) *Seeder {
	return &Seeder{indexer: indexer, dir: dir}
}

// SeedDirectory indexes every .txt file in the corpus directory and
// returns how many were indexed. A file that fails to read or index is
// skipped and logged; it does not abort the rest of the corpus.
func (s *Seeder) SeedDirectory(ctx context.Context) (int, error) {
	slog.Info("seeding documents", "dir", s.dir)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			slog.Error("read document failed", "filename", entry.Name(), "error", err)
			continue
		}

		content := CleanDocumentText(string(raw))
		if content == "" {
			slog.Warn("skipping empty document", "filename", entry.Name())
			continue
		}

		if err := s.indexer.IndexDocument(ctx, entry.Name(), content); err != nil {
			slog.Error("index document failed", "filename", entry.Name(), "error", err)
			continue
		}
		count++
	}

	slog.Info("document seeding complete", "indexed", count)
	return count, nil
}
