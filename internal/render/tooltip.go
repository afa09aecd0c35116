package render

import (
	"enrollment-dashboard/internal/model"
	"fmt"
	"sync"
)

// tooltipOffset keeps the tooltip clear of the pointer
const tooltipOffset = 15

// TooltipState is what the pie tooltip element should display
type TooltipState struct {
	Visible bool    `json:"visible"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	HTML    string  `json:"html"`
}

// Tooltip is the single tooltip element owned by a pie chart
type Tooltip struct {
	mu    sync.Mutex
	state TooltipState
}

// Show makes the tooltip visible at its last position
func (t *Tooltip) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Visible = true
}

// Move follows the pointer over a slice and updates the text
func (t *Tooltip) Move(label string, value int, x, y float64) {
	msg := label
	if msg == model.PieLabelBIPOC {
		msg = string(model.BIPOCAtLeastOne)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TooltipState{
		Visible: true,
		Left:    x + tooltipOffset,
		Top:     y + tooltipOffset,
		HTML:    fmt.Sprintf("%s<br>Count: %d", msg, value),
	}
}

func (t *Tooltip) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Visible = false
}

func (t *Tooltip) State() TooltipState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
