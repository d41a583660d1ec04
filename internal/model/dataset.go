package model

// Dataset represents one written output file for a (language, register, model)
// triple. This schema matches the files the dashboard reads from /data/.
type Dataset struct {
	Meta Meta      `json:"meta"` // Provenance, configuration and row diagnostics
	Data []WordRow `json:"data"` // Ranked word rows, ordered by LAS rank
}

// WordRow is one lexical item with its derived metrics.
// Keys are compact on purpose: these files are fetched by the browser.
type WordRow struct {
	Form       string   `json:"w"`           // Surface form
	UPOS       string   `json:"u"`           // Part-of-speech tag ("UNK" if absent)
	LAS        float64  `json:"las"`         // Volume score
	Impact     float64  `json:"lpr"`         // Log-prevalence ratio, thresholded
	AIFreq     float64  `json:"a"`           // AI occurrences per million
	HumanFreq  float64  `json:"h"`           // Human occurrences per million
	Ratio      float64  `json:"r"`           // Jeffreys-smoothed count ratio
	Distinct   *float64 `json:"d,omitempty"` // Pointwise KL term, when prevalence columns exist
	RankLAS    int      `json:"rk_las"`      // 1-based position by LAS descending
	RankImpact int      `json:"rk_lpr"`      // 1-based position by impact descending
}

// Meta carries the configuration a dataset was built with plus row counters,
// so every number in the dashboard is reproducible from the file itself.
type Meta struct {
	NPairs      int     `json:"np"`  // Paired samples from the summary file
	KWindow     int     `json:"kw"`  // Window size from the summary file
	TotalTokens float64 `json:"tt"`  // n_pairs * k_window, normalization denominator
	Source      string  `json:"src"` // Directory the CSV was read from
	Mode        string  `json:"md"`  // full or compact
	MinAICount  int     `json:"min"` // Impact guardrail threshold
	RatioSmooth float64 `json:"sm"`  // Additive smoothing constant
	RowsRead    int     `json:"n0"`  // CSV data rows seen
	RowsWritten int     `json:"n1"`  // Rows in the data array
	RowsDropped int     `json:"nx"`  // Rows dropped for having no alphanumeric rune
}

// InventoryEntry identifies one successfully written dataset in index.json.
type InventoryEntry struct {
	Lang     string `json:"lang"`
	Register string `json:"register"`
	Model    string `json:"model"`
}
