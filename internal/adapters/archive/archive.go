// Package archive persists raw upstream responses as JSON artifacts.
package archive

import (
	"context"
	"distance-matrix-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	fragmentTerms = 3
	fragmentLen   = 6
	hashLen       = 7
)

// Writes each archived response to its own file under Dir.
type FileArchiver struct {
	Dir    string
	Logger *zap.Logger
}

func NewFileArchiver(dir string, logger *zap.Logger) *FileArchiver {
	return &FileArchiver{Dir: dir, Logger: logger}
}

// Archive writes the response under a name derived from the query and
// returns that name.
func (a *FileArchiver) Archive(ctx context.Context, resp *domain.RawResponse, label string, terms []string) (string, error) {
	if a.Dir == "" {
		return "", errors.New("archive response: no directory configured")
	}
	if resp == nil {
		return "", errors.New("archive response: response is nil")
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("archive response: create %q: %w", a.Dir, err)
	}

	name := BuildName(label, terms)
	body, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		return "", fmt.Errorf("archive response: marshal: %w", err)
	}

	path := filepath.Join(a.Dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("archive response: write %q: %w", path, err)
	}

	if a.Logger != nil {
		a.Logger.Debug("response archived", zap.String("file", name))
	}
	return name, nil
}

// BuildName derives a stable artifact name from the label and the query
// terms. The same query always maps to the same name, so re-running a
// query overwrites its previous artifact instead of piling up copies.
func BuildName(label string, terms []string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "matrix"
	}
	sum := xxhash.Sum64String(strings.Join(terms, "|"))
	hash := fmt.Sprintf("%016x", sum)[:hashLen]
	return fmt.Sprintf("gmaps_%s_%s_%s.json", label, fragment(terms), hash)
}

func fragment(terms []string) string {
	parts := make([]string, 0, fragmentTerms)
	for _, term := range terms {
		if len(parts) == fragmentTerms {
			break
		}
		s := slugTerm(term)
		if s == "" {
			continue
		}
		if len(s) > fragmentLen {
			s = s[:fragmentLen]
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "query"
	}
	return strings.Join(parts, "_")
}

// slugTerm reduces a term to lowercase ASCII letters and digits.
// Decomposing first strips diacritics rather than dropping the rune.
func slugTerm(term string) string {
	decomposed := norm.NFKD.String(strings.ToLower(term))
	var b strings.Builder
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
