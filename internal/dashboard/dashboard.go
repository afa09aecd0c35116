package dashboard

import (
	"enrollment-dashboard/internal/model"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrUnknownYear     = errors.New("unknown year")
	ErrMissingRenderer = errors.New("renderer is required")
)

// BarRenderer draws the stacked bar chart into a surface
type BarRenderer interface {
	RenderBar(s *Surface, agg model.BarAggregate, year string) error
}

// PieRenderer draws the pie chart and hands back a handle on its slices
type PieRenderer interface {
	RenderPie(s *Surface, agg model.PieAggregate, year string) (PieHandle, error)
}

// ScatterRenderer draws the year-filtered records over the frame scales
type ScatterRenderer interface {
	RenderScatter(s *Surface, records []model.Record, frame ScatterFrame, year string) error
}

// Renderers bundles the three chart renderers of one dashboard
type Renderers struct {
	Bar     BarRenderer
	Pie     PieRenderer
	Scatter ScatterRenderer
}

// Option customizes a Dashboard
type Option func(*Dashboard)

// WithPlotSize sets the scatter plot area the brush coordinates refer to
func WithPlotSize(width, height float64) Option {
	return func(d *Dashboard) {
		d.plotWidth = width
		d.plotHeight = height
	}
}

// Dashboard keeps the three charts consistent with the selected year and
// brush. Methods are serialized: each runs to completion before the next.
type Dashboard struct {
	mu sync.Mutex

	records    []model.Record
	years      []string
	plotWidth  float64
	plotHeight float64
	renderers  Renderers

	year        string
	yearRecords []model.Record
	brush       *BrushController
	barAgg      model.BarAggregate
	pieAgg      model.PieAggregate
	pieHandle   PieHandle
	highlight   string

	bar     *Surface
	pie     *Surface
	scatter *Surface
}

// New selects the default year and renders all three charts
func New(records []model.Record, renderers Renderers, opts ...Option) (*Dashboard, error) {
	if renderers.Bar == nil || renderers.Pie == nil || renderers.Scatter == nil {
		return nil, ErrMissingRenderer
	}
	d := &Dashboard{
		records:    records,
		years:      ListYears(records),
		plotWidth:  DefaultPlotWidth,
		plotHeight: DefaultPlotHeight,
		renderers:  renderers,
		bar:        NewSurface("bar"),
		pie:        NewSurface("pie"),
		scatter:    NewSurface("scatter"),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.selectYear(DefaultYear(records)); err != nil {
		return nil, err
	}
	return d, nil
}

// SelectYear switches year, resets the brush and re-renders every chart
func (d *Dashboard) SelectYear(year string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !hasYear(d.records, year) {
		return fmt.Errorf("%w: %q", ErrUnknownYear, year)
	}
	return d.selectYear(year)
}

// selectYear renders the new year's charts before touching any state, so a
// failed render leaves the dashboard on its previous year
func (d *Dashboard) selectYear(year string) error {
	yearRecords := FilterByYear(d.records, year)
	frame := NewScatterFrame(yearRecords, d.plotWidth, d.plotHeight)
	brush := NewBrushController(frame, yearRecords)

	scatter := NewSurface(d.scatter.Name())
	if err := d.renderers.Scatter.RenderScatter(scatter, yearRecords, frame, year); err != nil {
		return fmt.Errorf("render scatter plot: %w", err)
	}
	linked, err := d.renderLinked(year, brush.Active())
	if err != nil {
		return err
	}

	d.year = year
	d.yearRecords = yearRecords
	d.brush = brush
	d.scatter.adopt(scatter)
	d.commit(linked)
	if d.barAgg.Dropped > 0 {
		log.Printf("⚠️ Year %s: %d records with an unrecognized enrollment status left out of the bar chart", year, d.barAgg.Dropped)
	}
	return nil
}

// Brush applies one brush frame and re-renders the bar and pie charts.
// The scatter plot is left untouched so its axes stay put while dragging.
func (d *Dashboard) Brush(sel model.Selection) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rerender(d.brush.Move(sel))
}

// ClearBrush restores the year-filtered set on the bar and pie charts
func (d *Dashboard) ClearBrush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rerender(d.brush.Clear())
}

// linkedCharts is a rendered but not yet installed bar and pie pair
type linkedCharts struct {
	barAgg    model.BarAggregate
	pieAgg    model.PieAggregate
	bar       *Surface
	pieHandle PieHandle
}

// renderLinked aggregates the active records and renders the bar chart into
// a scratch surface. The pie goes last, straight onto its own surface, since
// its handle redraws there on highlight.
func (d *Dashboard) renderLinked(year string, active []model.Record) (linkedCharts, error) {
	l := linkedCharts{
		barAgg: AggregateBar(active),
		pieAgg: AggregatePie(active),
		bar:    NewSurface(d.bar.Name()),
	}
	if err := d.renderers.Bar.RenderBar(l.bar, l.barAgg, year); err != nil {
		return linkedCharts{}, fmt.Errorf("render bar chart: %w", err)
	}
	h, err := d.renderers.Pie.RenderPie(d.pie, l.pieAgg, year)
	if err != nil {
		return linkedCharts{}, fmt.Errorf("render pie chart: %w", err)
	}
	l.pieHandle = h
	return l, nil
}

func (d *Dashboard) commit(l linkedCharts) {
	d.barAgg = l.barAgg
	d.pieAgg = l.pieAgg
	d.bar.adopt(l.bar)
	d.pieHandle = l.pieHandle
	d.highlight = ""
}

func (d *Dashboard) rerender(active []model.Record) error {
	l, err := d.renderLinked(d.year, active)
	if err != nil {
		return err
	}
	d.commit(l)
	return nil
}

// Highlight dims every pie slice except the one derived from label
func (d *Dashboard) Highlight(label string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pieHandle == nil {
		return false, nil
	}
	matched, err := Highlight(d.pieHandle, label)
	if err != nil {
		return matched, err
	}
	d.highlight = SliceID(label)
	return matched, nil
}

// Unhighlight restores full opacity on every pie slice
func (d *Dashboard) Unhighlight() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pieHandle == nil {
		return nil
	}
	d.highlight = ""
	return Unhighlight(d.pieHandle)
}

// Snapshot reports the state left by the last render
func (d *Dashboard) Snapshot() model.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return model.Snapshot{
		Year:        d.year,
		Years:       append([]string(nil), d.years...),
		BrushState:  d.brush.State().String(),
		Selection:   d.brush.Selection(),
		YearCount:   len(d.yearRecords),
		ActiveCount: len(d.brush.Active()),
		Bar:         d.barAgg.Flat(),
		Dropped:     d.barAgg.Dropped,
		Pie:         d.pieAgg,
		Highlight:   d.highlight,
	}
}

// Year is the currently selected year
func (d *Dashboard) Year() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.year
}

// BarAggregate returns the aggregate behind the current bar chart
func (d *Dashboard) BarAggregate() model.BarAggregate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.barAgg
}

// PieAggregate returns the aggregate behind the current pie chart
func (d *Dashboard) PieAggregate() model.PieAggregate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pieAgg
}

// PieHandle returns the handle of the most recent pie render
func (d *Dashboard) PieHandle() PieHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pieHandle
}

func (d *Dashboard) BrushState() BrushState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brush.State()
}

// Surface returns a chart container by name: bar, pie or scatter
func (d *Dashboard) Surface(name string) (*Surface, bool) {
	switch name {
	case "bar":
		return d.bar, true
	case "pie":
		return d.pie, true
	case "scatter":
		return d.scatter, true
	}
	return nil, false
}

func (d *Dashboard) Bar() *Surface     { return d.bar }
func (d *Dashboard) Pie() *Surface     { return d.pie }
func (d *Dashboard) Scatter() *Surface { return d.scatter }
