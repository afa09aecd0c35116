package dashboard

import (
	"regexp"
	"strings"
)

// Slice opacities used by cross-highlighting
const (
	FullOpacity   = 1.0
	DimmedOpacity = 0.5
)

const sliceClassPrefix = "pie-slice-"

var whitespaceRun = regexp.MustCompile(`\s+`)

// SliceID derives a CSS-safe identifier from a slice or trigger label
func SliceID(label string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(label, "-"))
}

// SliceClass is the per-slice class carried by every pie slice
func SliceClass(label string) string {
	return sliceClassPrefix + SliceID(label)
}

// PieHandle is returned by a pie render and gives the highlight component
// access to the slices it just drew
type PieHandle interface {
	// SliceIDs lists the derived identifiers of the drawn slices
	SliceIDs() []string
	// SetOpacity restyles one slice; false if no slice has that id
	SetOpacity(id string, opacity float64) bool
	// Redraw re-emits the pie with its current styles
	Redraw() error
}

// Highlight dims every slice except the one matching label and reports
// whether any slice matched. An unmatched label still dims all slices.
func Highlight(h PieHandle, label string) (bool, error) {
	target := SliceID(label)
	matched := false
	for _, id := range h.SliceIDs() {
		if id == target {
			h.SetOpacity(id, FullOpacity)
			matched = true
			continue
		}
		h.SetOpacity(id, DimmedOpacity)
	}
	return matched, h.Redraw()
}

// Unhighlight restores full opacity on every slice
func Unhighlight(h PieHandle) error {
	for _, id := range h.SliceIDs() {
		h.SetOpacity(id, FullOpacity)
	}
	return h.Redraw()
}
