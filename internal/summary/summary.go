// Package summary reads the companion summary_<lang>.json files that
// record how an experiment was paired and windowed.
package summary

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultKWindow is assumed when the summary omits params.windowk.
const DefaultKWindow = 40

// Stats holds the normalization inputs recovered from a summary file.
type Stats struct {
	KWindow     int     // Window size in tokens
	NPairs      int     // Paired model/human samples
	TotalTokens float64 // NPairs * KWindow; zero when either factor is zero
}

type summaryFile struct {
	Params struct {
		WindowK *int `json:"windowk"`
	} `json:"params"`
	PairingQC struct {
		ModelLines int `json:"model_lines"`
	} `json:"pairing_qc"`
	QC struct {
		NPairs int `json:"n_pairs"`
	} `json:"qc"`
}

// Read parses a summary JSON file. The pair count prefers
// pairing_qc.model_lines and falls back to qc.n_pairs. A missing or
// corrupt file yields zeroed stats and an error the caller may report;
// it must not abort the run.
func Read(path string) (Stats, error) {
	stats := Stats{KWindow: DefaultKWindow}

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("read summary: %w", err)
	}

	var sf summaryFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return stats, fmt.Errorf("parse summary %s: %w", path, err)
	}

	if sf.Params.WindowK != nil {
		stats.KWindow = *sf.Params.WindowK
	}

	stats.NPairs = sf.PairingQC.ModelLines
	if stats.NPairs == 0 {
		stats.NPairs = sf.QC.NPairs
	}

	// Paired data is assumed, so total human tokens ≈ total AI tokens.
	if stats.NPairs > 0 && stats.KWindow > 0 {
		stats.TotalTokens = float64(stats.NPairs) * float64(stats.KWindow)
	}
	return stats, nil
}
