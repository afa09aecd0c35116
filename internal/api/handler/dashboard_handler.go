package handler

import (
	"encoding/json"
	"enrollment-dashboard/internal/config"
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/internal/render"
	"enrollment-dashboard/internal/store"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const sessionsPrefix = "/api/v1/sessions/"

// RendererFactory builds the renderers of a new session
type RendererFactory func() (dashboard.Renderers, dashboard.Option)

// DashboardHandler serves sessions over the shared, read-only record set
type DashboardHandler struct {
	records      []model.Record
	years        []string
	stats        model.LoadStats
	sessions     *store.SessionStore
	newRenderers RendererFactory
	upgrader     websocket.Upgrader
	readLimit    int64
}

// New wires the handler; a nil factory uses the SVG renderers
func New(records []model.Record, stats model.LoadStats, sessions *store.SessionStore, stream config.StreamConfig, factory RendererFactory) *DashboardHandler {
	if factory == nil {
		factory = render.NewRenderers
	}
	return &DashboardHandler{
		records:      records,
		years:        dashboard.ListYears(records),
		stats:        stats,
		sessions:     sessions,
		newRenderers: factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  stream.ReadBufferSize,
			WriteBufferSize: stream.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		readLimit: stream.ReadLimit,
	}
}

// SessionResponse describes one dashboard session
type SessionResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	State     model.Snapshot `json:"state"`
}

// yearRequest is the body of POST /sessions/{id}/year
type yearRequest struct {
	Year string `json:"year"`
}

// highlightRequest is the body of POST /sessions/{id}/highlight
type highlightRequest struct {
	Label string `json:"label"`
}

// tooltipRequest is the body of POST /sessions/{id}/pie/tooltip
type tooltipRequest struct {
	Event string  `json:"event"` // mouseover, mousemove, mouseleave
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// pieInspector is implemented by the SVG pie handle
type pieInspector interface {
	Slices() []render.Slice
	Slice(label string) (render.Slice, bool)
	Tooltip() *render.Tooltip
}

// ListYears returns the selectable years
// @Summary List years
// @Description Distinct years of the loaded records, sorted ascending
// @Tags data
// @Produce json
// @Success 200 {object} map[string]interface{} "Years and load statistics"
// @Router /years [get]
func (h *DashboardHandler) ListYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"years":   h.years,
		"default": dashboard.DefaultYear(h.records),
		"records": len(h.records),
		"load":    h.stats,
	})
}

// CreateSession starts a dashboard on the default year
// @Summary Create a session
// @Description Create a dashboard session; all charts are rendered for the default year
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse "Session created"
// @Failure 500 {object} map[string]interface{} "Render failure"
// @Router /sessions [post]
func (h *DashboardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	renderers, opt := h.newRenderers()
	d, err := dashboard.New(h.records, renderers, opt)
	if err != nil {
		log.Printf("❌ Failed to create dashboard: %v", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	s := h.sessions.Create(d)
	log.Printf("📊 Session %s created on year %s", s.ID, d.Year())
	writeJSON(w, http.StatusCreated, sessionResponse(s))
}

// ListSessions returns every live session
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Success 200 {array} SessionResponse "Sessions"
// @Router /sessions [get]
func (h *DashboardHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	out := make([]SessionResponse, 0)
	for _, s := range h.sessions.List() {
		out = append(out, sessionResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSession returns the state of one session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [get]
func (h *DashboardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

// DeleteSession discards a session
// @Summary Delete session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [delete]
func (h *DashboardHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, sessionsPrefix, "")
	if !ok {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectYear switches the year and resets the brush
// @Summary Select year
// @Description Re-renders all three charts for the year; any brush selection is cleared
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body yearRequest true "Year"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 400 {object} map[string]interface{} "Unknown year"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/year [post]
func (h *DashboardHandler) SelectYear(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/year")
	if !ok {
		return
	}
	var req yearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := s.Dashboard.SelectYear(req.Year); err != nil {
		if errors.Is(err, dashboard.ErrUnknownYear) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("❌ Session %s: %v", s.ID, err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

// Brush applies a brush rectangle
// @Summary Brush the scatter plot
// @Description Filters the year's records by a rectangle in scatter plot pixel space (bounds inclusive) and re-renders the bar and pie charts
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body model.Selection true "Rectangle"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 400 {object} map[string]interface{} "Invalid rectangle"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/brush [post]
func (h *DashboardHandler) Brush(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/brush")
	if !ok {
		return
	}
	var sel model.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := s.Dashboard.Brush(sel); err != nil {
		log.Printf("❌ Session %s: %v", s.ID, err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

// ClearBrush drops the brush rectangle
// @Summary Clear the brush
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse "Session state"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/brush [delete]
func (h *DashboardHandler) ClearBrush(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/brush")
	if !ok {
		return
	}
	if err := s.Dashboard.ClearBrush(); err != nil {
		log.Printf("❌ Session %s: %v", s.ID, err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}

// GetChart returns the current SVG of a chart
// @Summary Get chart
// @Tags charts
// @Produce image/svg+xml
// @Param id path string true "Session ID"
// @Param chart path string true "bar.svg, pie.svg or scatter.svg"
// @Success 200 {string} string "SVG document"
// @Failure 404 {object} map[string]interface{} "Session or chart not found"
// @Router /sessions/{id}/charts/{chart} [get]
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	idx := strings.LastIndex(path, "/charts/")
	if idx < 0 {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	id, ok := pathID(path[:idx], sessionsPrefix, "")
	if !ok {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	name := strings.TrimSuffix(path[idx+len("/charts/"):], ".svg")
	surface, ok := s.Dashboard.Surface(name)
	if !ok {
		http.Error(w, "Unknown chart", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Chart-Generation", strconv.Itoa(surface.Generation()))
	w.Write(surface.Bytes())
}

// Highlight dims every pie slice except the labelled one
// @Summary Highlight a pie slice
// @Tags charts
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body highlightRequest true "Trigger label"
// @Success 200 {object} map[string]interface{} "Highlight result"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/highlight [post]
func (h *DashboardHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/highlight")
	if !ok {
		return
	}
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	matched, err := s.Dashboard.Highlight(req.Label)
	if err != nil {
		log.Printf("❌ Session %s: %v", s.ID, err)
		http.Error(w, "Failed to render pie chart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"label":   req.Label,
		"class":   dashboard.SliceClass(req.Label),
		"matched": matched,
		"slices":  h.slices(s),
	})
}

// Unhighlight restores every pie slice
// @Summary Reset pie highlight
// @Tags charts
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Slices"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/highlight [delete]
func (h *DashboardHandler) Unhighlight(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/highlight")
	if !ok {
		return
	}
	if err := s.Dashboard.Unhighlight(); err != nil {
		log.Printf("❌ Session %s: %v", s.ID, err)
		http.Error(w, "Failed to render pie chart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slices": h.slices(s)})
}

// GetPieSlices lists the drawn slices and the tooltip state
// @Summary Pie slices
// @Tags charts
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Slices and tooltip"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/pie/slices [get]
func (h *DashboardHandler) GetPieSlices(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/pie/slices")
	if !ok {
		return
	}
	resp := map[string]interface{}{"slices": h.slices(s)}
	if pi, ok := s.Dashboard.PieHandle().(pieInspector); ok {
		resp["tooltip"] = pi.Tooltip().State()
	}
	writeJSON(w, http.StatusOK, resp)
}

// PieTooltip feeds a pointer event to the pie tooltip
// @Summary Pie tooltip event
// @Tags charts
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body tooltipRequest true "Pointer event"
// @Success 200 {object} render.TooltipState "Tooltip state"
// @Failure 400 {object} map[string]interface{} "Unknown event or slice"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/pie/tooltip [post]
func (h *DashboardHandler) PieTooltip(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/pie/tooltip")
	if !ok {
		return
	}
	var req tooltipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	pi, ok := s.Dashboard.PieHandle().(pieInspector)
	if !ok {
		http.Error(w, "Pie chart has no tooltip", http.StatusNotFound)
		return
	}

	tip := pi.Tooltip()
	switch req.Event {
	case "mouseover":
		tip.Show()
	case "mousemove":
		slice, found := pi.Slice(req.Label)
		if !found {
			http.Error(w, "Unknown slice", http.StatusBadRequest)
			return
		}
		tip.Move(slice.Label, slice.Value, req.X, req.Y)
	case "mouseleave":
		tip.Hide()
	default:
		http.Error(w, "Unknown event", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tip.State())
}

// ------------------- helpers -------------------

func (h *DashboardHandler) session(w http.ResponseWriter, r *http.Request, suffix string) (*store.Session, bool) {
	id, ok := pathID(r.URL.Path, sessionsPrefix, suffix)
	if !ok {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func (h *DashboardHandler) slices(s *store.Session) []render.Slice {
	if pi, ok := s.Dashboard.PieHandle().(pieInspector); ok {
		return pi.Slices()
	}
	return []render.Slice{}
}

// pathID extracts the segment between prefix and suffix
func pathID(path, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func sessionResponse(s *store.Session) SessionResponse {
	return SessionResponse{ID: s.ID, CreatedAt: s.CreatedAt, State: s.Dashboard.Snapshot()}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
