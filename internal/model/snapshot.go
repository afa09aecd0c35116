package model

// Snapshot is the serializable state of one dashboard after its last render
type Snapshot struct {
	Year        string         `json:"year"`
	Years       []string       `json:"years"`
	BrushState  string         `json:"brush_state"`
	Selection   *Selection     `json:"selection,omitempty"`
	YearCount   int            `json:"year_count"`
	ActiveCount int            `json:"active_count"`
	Bar         map[string]int `json:"bar"`
	Dropped     int            `json:"dropped"`
	Pie         PieAggregate   `json:"pie"`
	Highlight   string         `json:"highlight,omitempty"`
}
