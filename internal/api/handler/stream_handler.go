package handler

import (
	"encoding/json"
	"enrollment-dashboard/internal/model"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
)

// BrushFrame is one pointer-move of the brush; a nil selection clears it
type BrushFrame struct {
	Selection *model.Selection `json:"selection"`
}

// BrushUpdate is sent back after every frame
type BrushUpdate struct {
	Seq         int                `json:"seq"`
	State       string             `json:"state"`
	ActiveCount int                `json:"active_count"`
	Bar         map[string]int     `json:"bar"`
	Pie         model.PieAggregate `json:"pie"`
	Error       string             `json:"error,omitempty"`
}

// BrushStream drives a session's brush over a WebSocket
// @Summary Brush stream
// @Description WebSocket carrying one JSON frame per brush move. Each frame re-aggregates the bar and pie charts and the new counts are sent back. With encoding=snappy both directions use snappy-compressed binary frames.
// @Tags sessions
// @Param id path string true "Session ID"
// @Param encoding query string false "snappy for compressed binary frames"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/brush/stream [get]
func (h *DashboardHandler) BrushStream(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/brush/stream")
	if !ok {
		return
	}
	compressed := r.URL.Query().Get("encoding") == encodingSnappy

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	log.Printf("🔌 Brush stream opened for session %s", s.ID)
	seq := 0
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ Brush stream for session %s closed: %v", s.ID, err)
			}
			break
		}
		seq++
		conn.SetReadDeadline(time.Now().Add(pongWait))

		update := h.applyFrame(s.Dashboard, data, compressed)
		update.Seq = seq
		out, err := encodeFrame(update, compressed)
		if err != nil {
			log.Printf("❌ Failed to encode brush update: %v", err)
			break
		}
		msgType := websocket.TextMessage
		if compressed {
			msgType = websocket.BinaryMessage
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(msgType, out); err != nil {
			break
		}
	}
	log.Printf("🔌 Brush stream closed for session %s after %d frames", s.ID, seq)
}

// brushTarget is the part of a dashboard the stream drives
type brushTarget interface {
	Brush(sel model.Selection) error
	ClearBrush() error
	Snapshot() model.Snapshot
}

func (h *DashboardHandler) applyFrame(d brushTarget, data []byte, compressed bool) BrushUpdate {
	var update BrushUpdate
	if compressed {
		var err error
		if data, err = decompressFrame(data); err != nil {
			update.Error = "invalid snappy frame"
			return fill(update, d.Snapshot())
		}
	}

	var frame BrushFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		update.Error = "invalid JSON frame"
		return fill(update, d.Snapshot())
	}

	var err error
	if frame.Selection == nil {
		err = d.ClearBrush()
	} else {
		err = d.Brush(*frame.Selection)
	}
	if err != nil {
		update.Error = err.Error()
	}
	return fill(update, d.Snapshot())
}

func fill(u BrushUpdate, snap model.Snapshot) BrushUpdate {
	u.State = snap.BrushState
	u.ActiveCount = snap.ActiveCount
	u.Bar = snap.Bar
	u.Pie = snap.Pie
	return u
}
