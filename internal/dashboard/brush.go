package dashboard

import "enrollment-dashboard/internal/model"

// BrushState is the state of the scatter plot brush
type BrushState int

const (
	BrushIdle BrushState = iota
	BrushSelecting
)

func (s BrushState) String() string {
	switch s {
	case BrushSelecting:
		return "selecting"
	default:
		return "idle"
	}
}

// BrushController filters the year-filtered records by a rectangle over the
// scatter plot. Every Move recomputes the active set; there is no debouncing.
type BrushController struct {
	frame     ScatterFrame
	base      []model.Record
	state     BrushState
	selection *model.Selection
	active    []model.Record
}

// NewBrushController starts Idle with the whole year-filtered set active
func NewBrushController(frame ScatterFrame, yearRecords []model.Record) *BrushController {
	return &BrushController{
		frame:  frame,
		base:   yearRecords,
		state:  BrushIdle,
		active: yearRecords,
	}
}

// Move applies a candidate rectangle and returns the records inside it
func (b *BrushController) Move(sel model.Selection) []model.Record {
	sel = sel.Normalize()
	active := make([]model.Record, 0)
	for _, rec := range b.base {
		x, y := b.frame.Project(rec)
		if sel.Contains(x, y) {
			active = append(active, rec)
		}
	}
	b.state = BrushSelecting
	b.selection = &sel
	b.active = active
	return active
}

// Clear drops the selection and restores the year-filtered set
func (b *BrushController) Clear() []model.Record {
	b.state = BrushIdle
	b.selection = nil
	b.active = b.base
	return b.active
}

func (b *BrushController) State() BrushState { return b.state }

// Selection returns a copy of the current rectangle, nil when Idle
func (b *BrushController) Selection() *model.Selection {
	if b.selection == nil {
		return nil
	}
	s := *b.selection
	return &s
}

func (b *BrushController) Active() []model.Record { return b.active }

func (b *BrushController) Frame() ScatterFrame { return b.frame }
