// Package transform computes per-word derived metrics from raw CSV
// records. It is pure: one record plus the dataset configuration in,
// one row (or a drop reason) out.
package transform

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/lexaindex/lexbuild/internal/model"
)

// ellEpsilon replaces a zero human prevalence so the KL term stays a
// large finite number instead of blowing up on log(0).
const ellEpsilon = 1e-9

// DropReason classifies why a record produced no output row.
type DropReason int

const (
	DropNone     DropReason = iota // row emitted
	DropNonAlnum                   // form has no alphanumeric rune
	DropZeroAI                     // compact mode and c_M == 0
)

// Config holds the per-dataset transform parameters.
type Config struct {
	MinAICountForImpact int     // c_M threshold below which impact is forced to 0
	RatioSmooth         float64 // additive smoothing for the count ratio
	Mode                string  // model.ModeFull or model.ModeCompact
	TotalTokens         float64 // normalization denominator for OPM
	Distinct            bool    // compute KL distinctiveness when columns exist
}

// Transformer converts header-mapped CSV records into word rows.
type Transformer struct {
	cfg Config
}

// New creates a transformer for one dataset.
func New(cfg Config) *Transformer {
	return &Transformer{cfg: cfg}
}

// Row computes the derived metrics for a single CSV record. Numeric
// fields that are missing or unparseable default to 0 rather than
// failing the row. Ranks are left at zero; they are assigned in a
// later pass over the whole dataset.
func (t *Transformer) Row(rec map[string]string) (model.WordRow, DropReason) {
	form := strings.TrimSpace(rec["form"])
	if !HasAlnum(form) {
		return model.WordRow{}, DropNonAlnum
	}

	// Raw counts drive both the smoothed ratio and the impact score.
	countAI := parseFloat(rec["c_M"])
	countHuman := parseFloat(rec["c_H"])

	if t.cfg.Mode == model.ModeCompact && countAI == 0 {
		return model.WordRow{}, DropZeroAI
	}

	// Occurrences per million for display.
	var opmAI, opmHuman float64
	if t.cfg.TotalTokens > 0 {
		opmAI = countAI / t.cfg.TotalTokens * 1_000_000
		opmHuman = countHuman / t.cfg.TotalTokens * 1_000_000
	}

	// Jeffreys-smoothed ratio; defined for any non-negative counts.
	ratio := (countAI + t.cfg.RatioSmooth) / (countHuman + t.cfg.RatioSmooth)

	// Log prevalence ratio, gated so low-count noise cannot dominate
	// the high-impact ranking.
	var impact float64
	if countAI >= float64(t.cfg.MinAICountForImpact) {
		impact = math.Log2((countAI + 1) / (countHuman + 1))
	}

	row := model.WordRow{
		Form:      form,
		UPOS:      pos(rec),
		LAS:       parseFloat(rec["LAS"]),
		Impact:    impact,
		AIFreq:    Round(opmAI, 2),
		HumanFreq: Round(opmHuman, 2),
		Ratio:     Round(ratio, 1),
	}

	if t.cfg.Distinct {
		if ellM, ellH, ok := prevalence(rec); ok {
			d := Round(distinctiveness(ellM, ellH), 5)
			row.Distinct = &d
		}
	}
	return row, DropNone
}

// distinctiveness is the pointwise KL contribution of a word's AI
// prevalence against its human prevalence.
func distinctiveness(ellM, ellH float64) float64 {
	switch {
	case ellM > 0 && ellH > 0:
		return ellM * math.Log(ellM/ellH)
	case ellM > 0:
		return ellM * math.Log(ellM/ellEpsilon)
	default:
		return 0
	}
}

// prevalence reports the optional ell_M/ell_H fields; ok is false when
// the CSV variant does not carry them.
func prevalence(rec map[string]string) (ellM, ellH float64, ok bool) {
	mRaw, mOK := rec["ell_M"]
	hRaw, hOK := rec["ell_H"]
	if !mOK || !hOK {
		return 0, 0, false
	}
	return parseFloat(mRaw), parseFloat(hRaw), true
}

func pos(rec map[string]string) string {
	if u := rec["upos"]; u != "" {
		return u
	}
	return "UNK"
}

// HasAlnum reports whether the token contains at least one letter or
// numeric rune. Unicode-aware so non-Latin scripts survive the filter.
func HasAlnum(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Round rounds to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// parseFloat is parse-or-zero: empty or malformed values never abort a row.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
