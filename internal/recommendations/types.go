package recommendations

// Recommendation represents a deterministic suggestion derived from analysis results.
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// Issue is a formatting issue as reported by the auditor.
type Issue struct {
	Code     string
	Severity string
	Message  string
}

// Keyword is a missing profile keyword.
type Keyword struct {
	Term     string
	Weight   float64
	Category string
}

// CategoryScore is one per-category keyword result.
type CategoryScore struct {
	Category    string
	Score       float64
	WeightShare float64
}

// Input is the data needed for recommendation generation.
type Input struct {
	Industry         string
	MissingKeywords  []Keyword
	FormattingIssues []Issue
	Categories       []CategoryScore
}
