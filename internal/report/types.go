package report

// Report is the top-level output of a sharpgrade ranking run.
type Report struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	RunID       string     `json:"run_id"`
	Profile     string     `json:"profile"`
	Criterion   Criterion  `json:"criterion"`
	Params      Params     `json:"params"`
	BuildInfo   *BuildInfo `json:"build_info,omitempty"`
	Entries     []Entry    `json:"entries"`
	Winner      *Winner    `json:"winner,omitempty"`
	Stats       Stats      `json:"stats"`
}

// Criterion is the serialized form of score.Criterion.
type Criterion struct {
	Metric string `json:"metric"`           // sharpness, contrast, brightness
	Method string `json:"method,omitempty"` // sharpness only
	Target string `json:"target"`           // maximum, minimum
}

// Params records the estimator settings the scores were computed with.
type Params struct {
	Window    int     `json:"window"`
	BlockSize int     `json:"block_size"`
	Alpha     float64 `json:"alpha"`
	MaxDim    int     `json:"max_dim,omitempty"` // downscale bound, 0 = none
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Tool    string `json:"tool,omitempty"` // sharpgrade version
}

// Entry is one input image. Failed entries carry Error and no score.
type Entry struct {
	Index  int     `json:"index"`
	Path   string  `json:"path"`
	Hash   string  `json:"hash,omitempty"` // first 16 hex chars of xxhash64
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Score  float64 `json:"score"`
	Error  string  `json:"error,omitempty"`
}

// Scored reports whether the entry took part in selection.
func (e Entry) Scored() bool { return e.Error == "" }

// Winner is the selected entry.
type Winner struct {
	Index int     `json:"index"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Stats aggregates run metrics over the scored entries.
type Stats struct {
	Total  int     `json:"total"`
	Scored int     `json:"scored"`
	Failed int     `json:"failed,omitempty"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
