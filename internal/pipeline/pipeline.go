package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexaindex/lexbuild/internal/discover"
	"github.com/lexaindex/lexbuild/internal/model"
	"github.com/lexaindex/lexbuild/internal/rank"
	"github.com/lexaindex/lexbuild/internal/summary"
	"github.com/lexaindex/lexbuild/internal/transform"
)

// IndexFile is the inventory filename written next to the datasets.
const IndexFile = "index.json"

// Pipeline converts discovered experiment artifacts into dashboard datasets
type Pipeline struct {
	cfg *model.Config
}

// New creates a pipeline with the given configuration
func New(cfg *model.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// DatasetInfo describes one successfully written dataset
type DatasetInfo struct {
	Entry       model.InventoryEntry
	NPairs      int
	RowsRead    int
	RowsWritten int
	RowsDropped int
	OutputPath  string
}

// Result contains everything a single run produced
type Result struct {
	Datasets  []DatasetInfo
	Inventory []model.InventoryEntry
	Failures  int
}

// Run executes the complete batch: walk the input root, build every
// discovered dataset, then write the inventory index. A failing dataset
// is reported and skipped; the run always completes and writes whatever
// succeeded.
func (p *Pipeline) Run() (*Result, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	candidates, err := discover.Walk(p.cfg.InputRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, c := range candidates {
		info, err := p.buildDataset(c)
		if err != nil {
			result.Failures++
			fmt.Fprintf(os.Stderr, "✗ Error processing %s: %v\n", c.CSVPath, err)
			continue
		}
		result.Datasets = append(result.Datasets, *info)
		result.Inventory = append(result.Inventory, info.Entry)

		fmt.Fprintf(os.Stderr, "✓ Generated: %s | %s | %s (N=%d, rows=%d/%d, dropped_non_alnum=%d)\n",
			c.Lang, c.Register, c.Model, info.NPairs, info.RowsWritten, info.RowsRead, info.RowsDropped)
	}

	indexPath := filepath.Join(p.cfg.OutputDir, IndexFile)
	if err := WriteIndex(indexPath, result.Inventory); err != nil {
		return result, fmt.Errorf("write index: %w", err)
	}
	return result, nil
}

// buildDataset runs the full transform for one candidate directory.
func (p *Pipeline) buildDataset(c discover.Candidate) (*DatasetInfo, error) {
	// 1. Recover the normalization denominator. A broken summary file
	// degrades OPM to zero but never fails the dataset.
	stats, err := summary.Read(c.SummaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Error reading summary %s: %v\n", c.SummaryPath, err)
	}

	// 2. Read CSV records
	records, err := ReadRecords(c.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	// 3. Compute per-row metrics
	tr := transform.New(transform.Config{
		MinAICountForImpact: p.cfg.MinAICountForImpact,
		RatioSmooth:         p.cfg.RatioSmooth,
		Mode:                p.cfg.Mode,
		TotalTokens:         stats.TotalTokens,
		Distinct:            p.cfg.Distinct,
	})

	rows := make([]model.WordRow, 0, len(records))
	droppedNonAlnum := 0
	for _, rec := range records {
		row, drop := tr.Row(rec)
		switch drop {
		case transform.DropNonAlnum:
			droppedNonAlnum++
		case transform.DropZeroAI:
			// compact-mode space saving, not a data defect
		default:
			rows = append(rows, row)
		}
	}

	// 4. Multi-pass ranking fixes rk_las/rk_lpr and the output order
	rank.Assign(rows)

	// 5. Serialize
	ds := &model.Dataset{
		Meta: model.Meta{
			NPairs:      stats.NPairs,
			KWindow:     stats.KWindow,
			TotalTokens: stats.TotalTokens,
			Source:      c.Dir,
			Mode:        p.cfg.Mode,
			MinAICount:  p.cfg.MinAICountForImpact,
			RatioSmooth: p.cfg.RatioSmooth,
			RowsRead:    len(records),
			RowsWritten: len(rows),
			RowsDropped: droppedNonAlnum,
		},
		Data: rows,
	}

	outputPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("%s_%s_%s.json", c.Lang, c.Register, c.Model))
	if err := WriteDataset(outputPath, ds); err != nil {
		return nil, err
	}

	return &DatasetInfo{
		Entry:       model.InventoryEntry{Lang: c.Lang, Register: c.Register, Model: c.Model},
		NPairs:      stats.NPairs,
		RowsRead:    len(records),
		RowsWritten: len(rows),
		RowsDropped: droppedNonAlnum,
		OutputPath:  outputPath,
	}, nil
}
