package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	csvPrefix     = "las_word_"
	csvSuffix     = ".csv"
	summaryPrefix = "summary_"
	summarySuffix = ".json"
	modelPrefix   = "las-"
)

// dateStamp matches the trailing date portion of a model folder name,
// e.g. "gpt-4o-2024-08-06-eval" -> everything from "-2024-08-06" on.
var dateStamp = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}.*`)

// Candidate is one discovered (csv, summary) pair with its path metadata.
type Candidate struct {
	Dir         string // Directory containing both files
	Lang        string // Language token from the CSV filename
	Register    string // Path segment after the input root
	ModelRaw    string // Model folder name as found on disk
	Model       string // Cleaned model identifier
	CSVPath     string
	SummaryPath string
}

// Walk traverses the input root sequentially and returns every directory
// that holds a matching las_word_<lang>.csv / summary_<lang>.json pair,
// in traversal order. Directories whose path does not yield (register,
// model) metadata are skipped silently; unreadable subtrees are reported
// and skipped, never aborting the walk.
func Walk(inputRoot string) ([]Candidate, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("stat input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root is not a directory: %s", inputRoot)
	}

	rootBase := filepath.Base(filepath.Clean(inputRoot))
	var candidates []Candidate

	walkErr := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Skipping %s: %v\n", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Skipping %s: %v\n", path, err)
			return nil
		}

		names := make(map[string]bool, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names[e.Name()] = true
			}
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasPrefix(name, csvPrefix) || !strings.HasSuffix(name, csvSuffix) {
				continue
			}
			lang := strings.TrimSuffix(strings.TrimPrefix(name, csvPrefix), csvSuffix)
			summaryName := summaryPrefix + lang + summarySuffix
			if !names[summaryName] {
				continue
			}

			register, modelRaw, ok := extractPathMeta(path, rootBase)
			if !ok {
				continue
			}

			candidates = append(candidates, Candidate{
				Dir:         path,
				Lang:        lang,
				Register:    register,
				ModelRaw:    modelRaw,
				Model:       CleanModelName(modelRaw),
				CSVPath:     filepath.Join(path, name),
				SummaryPath: filepath.Join(path, summaryName),
			})
		}
		return nil
	})
	if walkErr != nil {
		return candidates, fmt.Errorf("walk %s: %w", inputRoot, walkErr)
	}
	return candidates, nil
}

// extractPathMeta derives (register, model) from the path segments
// following the input root's base name. Fails if the root segment is not
// found or fewer than two segments follow it.
func extractPathMeta(dir, rootBase string) (register, model string, ok bool) {
	parts := strings.Split(filepath.Clean(dir), string(os.PathSeparator))

	idx := -1
	for i, p := range parts {
		if p == rootBase {
			idx = i
			break
		}
	}
	if idx < 0 || idx+2 >= len(parts) {
		return "", "", false
	}
	return parts[idx+1], parts[idx+2], true
}

// CleanModelName turns a model folder name into the canonical identifier
// used in output filenames: the "las-" prefix and the first date stamp
// (plus anything after it) are removed.
func CleanModelName(folderName string) string {
	name := strings.TrimPrefix(folderName, modelPrefix)
	return dateStamp.ReplaceAllString(name, "")
}
