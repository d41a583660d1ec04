package transform

import (
	"math"
	"testing"

	"github.com/lexaindex/lexbuild/internal/model"
)

func defaultConfig() Config {
	return Config{
		MinAICountForImpact: 20,
		RatioSmooth:         0.5,
		Mode:                model.ModeFull,
		TotalTokens:         1000,
	}
}

func TestTransformer_Row_WorkedExample(t *testing.T) {
	// c_M=30, c_H=10, total_tokens=1000, min=20, smooth=0.5
	tr := New(defaultConfig())

	row, drop := tr.Row(map[string]string{
		"form": "delve",
		"upos": "VERB",
		"LAS":  "0.4213",
		"c_M":  "30",
		"c_H":  "10",
	})
	if drop != DropNone {
		t.Fatalf("Expected row to be emitted, got drop reason %d", drop)
	}

	if row.AIFreq != 30000.0 {
		t.Errorf("Expected AI OPM 30000.0, got %v", row.AIFreq)
	}
	if row.HumanFreq != 10000.0 {
		t.Errorf("Expected human OPM 10000.0, got %v", row.HumanFreq)
	}
	if row.Ratio != 2.9 {
		t.Errorf("Expected ratio 2.9, got %v", row.Ratio)
	}
	// log2(31/11) = 1.494765...; rounded later by the ranker
	if math.Abs(row.Impact-1.494765) > 1e-5 {
		t.Errorf("Expected impact ~1.494765, got %v", row.Impact)
	}
	if row.UPOS != "VERB" {
		t.Errorf("Expected UPOS VERB, got %s", row.UPOS)
	}
	if row.LAS != 0.4213 {
		t.Errorf("Expected LAS 0.4213, got %v", row.LAS)
	}
}

func TestTransformer_Row_OPMExactness(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalTokens = 123456
	tr := New(cfg)

	row, _ := tr.Row(map[string]string{"form": "word", "c_M": "17", "c_H": "3"})

	wantAI := Round(17.0/123456*1_000_000, 2)
	wantHuman := Round(3.0/123456*1_000_000, 2)
	if row.AIFreq != wantAI {
		t.Errorf("Expected AI OPM %v, got %v", wantAI, row.AIFreq)
	}
	if row.HumanFreq != wantHuman {
		t.Errorf("Expected human OPM %v, got %v", wantHuman, row.HumanFreq)
	}
}

func TestTransformer_Row_ZeroTotalTokens(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalTokens = 0
	tr := New(cfg)

	row, drop := tr.Row(map[string]string{"form": "word", "c_M": "30", "c_H": "10"})
	if drop != DropNone {
		t.Fatalf("Expected row to be emitted, got drop reason %d", drop)
	}
	if row.AIFreq != 0 || row.HumanFreq != 0 {
		t.Errorf("Expected zero OPM without total tokens, got a=%v h=%v", row.AIFreq, row.HumanFreq)
	}
	// Ratio and impact still computed from raw counts
	if row.Ratio != 2.9 {
		t.Errorf("Expected ratio 2.9, got %v", row.Ratio)
	}
}

func TestTransformer_Row_ImpactThreshold(t *testing.T) {
	tr := New(defaultConfig())

	// Below the guardrail: impact forced to zero regardless of counts.
	row, _ := tr.Row(map[string]string{"form": "rare", "c_M": "19", "c_H": "0"})
	if row.Impact != 0 {
		t.Errorf("Expected zero impact below threshold, got %v", row.Impact)
	}

	// Exactly at the guardrail counts.
	row, _ = tr.Row(map[string]string{"form": "common", "c_M": "20", "c_H": "0"})
	want := math.Log2(21.0 / 1.0)
	if math.Abs(row.Impact-want) > 1e-9 {
		t.Errorf("Expected impact %v at threshold, got %v", want, row.Impact)
	}
}

func TestTransformer_Row_RatioAlwaysFinite(t *testing.T) {
	tr := New(defaultConfig())

	cases := []map[string]string{
		{"form": "a1", "c_M": "0", "c_H": "0"},
		{"form": "b2", "c_M": "100", "c_H": "0"},
		{"form": "c3", "c_M": "0", "c_H": "100"},
	}
	for _, rec := range cases {
		row, _ := tr.Row(rec)
		if math.IsInf(row.Ratio, 0) || math.IsNaN(row.Ratio) {
			t.Errorf("Expected finite ratio for %v, got %v", rec, row.Ratio)
		}
	}
}

func TestTransformer_Row_AlnumFilter(t *testing.T) {
	tr := New(defaultConfig())

	if _, drop := tr.Row(map[string]string{"form": "...", "c_M": "5", "c_H": "5"}); drop != DropNonAlnum {
		t.Errorf("Expected pure punctuation to be dropped, got drop reason %d", drop)
	}
	if _, drop := tr.Row(map[string]string{"form": "3.", "c_M": "5", "c_H": "5"}); drop != DropNone {
		t.Errorf("Expected '3.' to be retained, got drop reason %d", drop)
	}
	// Non-Latin scripts must survive the filter.
	if _, drop := tr.Row(map[string]string{"form": "слово", "c_M": "5", "c_H": "5"}); drop != DropNone {
		t.Errorf("Expected Cyrillic form to be retained, got drop reason %d", drop)
	}
	if _, drop := tr.Row(map[string]string{"form": "  ", "c_M": "5", "c_H": "5"}); drop != DropNonAlnum {
		t.Errorf("Expected blank form to be dropped, got drop reason %d", drop)
	}
}

func TestTransformer_Row_CompactMode(t *testing.T) {
	cfg := defaultConfig()
	cfg.Mode = model.ModeCompact
	tr := New(cfg)

	// Zero AI count is dropped regardless of the human count.
	if _, drop := tr.Row(map[string]string{"form": "word", "c_M": "0", "c_H": "500"}); drop != DropZeroAI {
		t.Errorf("Expected zero-AI row to be dropped in compact mode, got drop reason %d", drop)
	}
	if _, drop := tr.Row(map[string]string{"form": "word", "c_M": "1", "c_H": "0"}); drop != DropNone {
		t.Errorf("Expected non-zero AI row to be kept in compact mode, got drop reason %d", drop)
	}

	// Full mode keeps zero-AI rows.
	tr = New(defaultConfig())
	if _, drop := tr.Row(map[string]string{"form": "word", "c_M": "0", "c_H": "500"}); drop != DropNone {
		t.Errorf("Expected zero-AI row to be kept in full mode, got drop reason %d", drop)
	}
}

func TestTransformer_Row_ParseOrZero(t *testing.T) {
	tr := New(defaultConfig())

	row, drop := tr.Row(map[string]string{"form": "word", "c_M": "not-a-number", "LAS": ""})
	if drop != DropNone {
		t.Fatalf("Expected row with malformed numbers to still be emitted, got drop reason %d", drop)
	}
	if row.LAS != 0 || row.AIFreq != 0 {
		t.Errorf("Expected malformed fields to default to 0, got las=%v a=%v", row.LAS, row.AIFreq)
	}
	if row.UPOS != "UNK" {
		t.Errorf("Expected missing upos to default to UNK, got %s", row.UPOS)
	}
}

func TestTransformer_Row_Distinctiveness(t *testing.T) {
	cfg := defaultConfig()
	cfg.Distinct = true
	tr := New(cfg)

	// Both prevalences positive: plain pointwise KL term.
	row, _ := tr.Row(map[string]string{"form": "word", "ell_M": "0.004", "ell_H": "0.001"})
	if row.Distinct == nil {
		t.Fatal("Expected distinctiveness to be computed")
	}
	if *row.Distinct != 0.00555 {
		t.Errorf("Expected distinctiveness 0.00555, got %v", *row.Distinct)
	}

	// Zero human prevalence: epsilon keeps the score large but finite.
	row, _ = tr.Row(map[string]string{"form": "word", "ell_M": "0.5", "ell_H": "0"})
	if row.Distinct == nil {
		t.Fatal("Expected distinctiveness to be computed")
	}
	if math.IsInf(*row.Distinct, 0) || *row.Distinct != 10.01506 {
		t.Errorf("Expected distinctiveness 10.01506, got %v", *row.Distinct)
	}

	// Zero AI prevalence: term is zero.
	row, _ = tr.Row(map[string]string{"form": "word", "ell_M": "0", "ell_H": "0.3"})
	if row.Distinct == nil || *row.Distinct != 0 {
		t.Errorf("Expected zero distinctiveness for zero AI prevalence, got %v", row.Distinct)
	}

	// Columns absent: no field at all.
	row, _ = tr.Row(map[string]string{"form": "word", "c_M": "5"})
	if row.Distinct != nil {
		t.Errorf("Expected no distinctiveness without prevalence columns, got %v", *row.Distinct)
	}

	// Flag off: never computed even when columns exist.
	tr = New(defaultConfig())
	row, _ = tr.Row(map[string]string{"form": "word", "ell_M": "0.004", "ell_H": "0.001"})
	if row.Distinct != nil {
		t.Errorf("Expected no distinctiveness with flag off, got %v", *row.Distinct)
	}
}

func TestHasAlnum(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"word", true},
		{"3.", true},
		{"...", false},
		{"", false},
		{"!?#", false},
		{"µ-word", true},
		{"²", true}, // unicode numeric
	}
	for _, c := range cases {
		if got := HasAlnum(c.token); got != c.want {
			t.Errorf("HasAlnum(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}
