package handler

import (
	"encoding/json"
	"enrollment-dashboard/internal/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialStream(t *testing.T, h *DashboardHandler, id, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.BrushStream))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/sessions/" + id + "/brush/stream" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBrushStreamJSON(t *testing.T) {
	h := newTestHandler()
	s := createSession(t, h)
	conn := dialStream(t, h, s.ID, "")

	frames := []BrushFrame{
		{Selection: &model.Selection{X0: 0, Y0: 0, X1: 340, Y1: 290}},
		{Selection: &model.Selection{X0: 160, Y0: 140, X1: 170, Y1: 145}},
		{Selection: nil},
	}
	want := []struct {
		state  string
		active int
	}{
		{"selecting", 3},
		{"selecting", 1},
		{"idle", 3},
	}
	for i, f := range frames {
		if err := conn.WriteJSON(f); err != nil {
			t.Fatal(err)
		}
		var u BrushUpdate
		if err := conn.ReadJSON(&u); err != nil {
			t.Fatal(err)
		}
		if u.Seq != i+1 || u.State != want[i].state || u.ActiveCount != want[i].active || u.Error != "" {
			t.Fatalf("frame %d: unexpected update %+v", i, u)
		}
	}
}

func TestBrushStreamInvalidFrame(t *testing.T) {
	h := newTestHandler()
	s := createSession(t, h)
	conn := dialStream(t, h, s.ID, "")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	var u BrushUpdate
	if err := conn.ReadJSON(&u); err != nil {
		t.Fatal(err)
	}
	if u.Error == "" || u.State != "idle" || u.ActiveCount != 3 {
		t.Fatalf("expected an error update with the state unchanged, got %+v", u)
	}
}

func TestBrushStreamSnappy(t *testing.T) {
	h := newTestHandler()
	s := createSession(t, h)
	conn := dialStream(t, h, s.ID, "?encoding=snappy")

	frame, err := encodeFrame(BrushFrame{Selection: &model.Selection{X0: 160, Y0: 140, X1: 170, Y1: 145}}, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		t.Fatal(err)
	}

	msgType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("expected a binary frame, got %d", msgType)
	}
	raw, err := decompressFrame(data)
	if err != nil {
		t.Fatalf("expected a snappy frame: %v", err)
	}
	var u BrushUpdate
	if err := json.Unmarshal(raw, &u); err != nil {
		t.Fatal(err)
	}
	if u.ActiveCount != 1 || u.Pie.BIPOC != 1 || u.Bar["Unenrolled-At least one BIPOC"] != 1 {
		t.Fatalf("unexpected update %+v", u)
	}
}

func TestBrushStreamUnknownSession(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(http.HandlerFunc(h.BrushStream))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/sessions/missing/brush/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected the dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	plain, err := encodeFrame(map[string]int{"seq": 1}, false)
	if err != nil || string(plain) != `{"seq":1}` {
		t.Fatalf("unexpected plain frame %q (%v)", plain, err)
	}
	if _, err := decompressFrame([]byte("not snappy")); err == nil {
		t.Fatalf("expected an error for a corrupt frame")
	}
}
