package handler

import (
	"enrollment-dashboard/internal/render"
	"html/template"
	"log"
	"net/http"
)

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// indexPage carries the chart geometry the page needs for pointer hit tests
type indexPage struct {
	Years   []string
	Pie     render.PieGeometry
	Scatter render.Margins
}

// Index serves the page that hosts the three charts
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := indexPage{
		Years:   h.years,
		Pie:     render.NewPieChart().Geometry(),
		Scatter: render.NewScatterChart().Margins,
	}
	if err := indexTemplate.Execute(w, page); err != nil {
		log.Printf("❌ Failed to render index: %v", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Family Enrollment Dashboard</title>
<style>
body { font-family: sans-serif; margin: 20px; }
.charts { display: flex; flex-wrap: wrap; gap: 12px; }
.charts img { width: 460px; height: 400px; border: 1px solid #ddd; }
#tooltip { position: absolute; visibility: hidden; background: #fff; border: 1px solid #999; padding: 4px; font-size: 12px; }
</style>
</head>
<body>
<h1>Family Enrollment</h1>
<p>Families with <span class="highlight-trigger" data-highlight-class="BIPOC">at least one BIPOC member</span> and
<span class="highlight-trigger" data-highlight-class="White">all-White families</span> are counted separately in the pie.</p>
<label for="year">Year</label>
<select id="year">{{range .Years}}<option value="{{.}}">{{.}}</option>{{end}}</select>
<button id="clear">Clear brush</button>
<div class="charts">
  <img id="bar" alt="Enrollment by BIPOC category">
  <img id="pie" alt="Families by BIPOC category">
  <img id="scatter" alt="Brush to select families">
</div>
<div id="tooltip"></div>
<script>
(async function () {
  const api = "/api/v1/sessions";
  const pieGeometry = {{.Pie}};
  const plotLeft = {{.Scatter.Left}};
  const plotTop = {{.Scatter.Top}};
  const res = await fetch(api, { method: "POST" });
  const session = await res.json();
  const base = api + "/" + session.id;
  const year = document.getElementById("year");
  year.value = session.state.year;

  let slices = [];
  async function loadSlices() {
    const r = await fetch(base + "/pie/slices");
    const body = await r.json();
    slices = body.slices.filter(function (s) { return s.value > 0; });
  }
  function refresh(names) {
    const t = Date.now();
    names.forEach(function (n) {
      document.getElementById(n).src = base + "/charts/" + n + ".svg?t=" + t;
    });
    if (names.indexOf("pie") >= 0) loadSlices();
  }
  refresh(["bar", "pie", "scatter"]);

  year.addEventListener("change", async function () {
    await fetch(base + "/year", { method: "POST", body: JSON.stringify({ year: year.value }) });
    refresh(["bar", "pie", "scatter"]);
  });

  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + base + "/brush/stream");
  ws.onmessage = function () { refresh(["bar", "pie"]); };
  document.getElementById("clear").addEventListener("click", function () {
    ws.send(JSON.stringify({ selection: null }));
  });

  // brush coordinates are relative to the scatter plot area
  const scatter = document.getElementById("scatter");
  let start = null;
  function point(e) {
    const r = scatter.getBoundingClientRect();
    return { x: e.clientX - r.left - plotLeft, y: e.clientY - r.top - plotTop };
  }
  scatter.addEventListener("mousedown", function (e) { e.preventDefault(); start = point(e); });
  window.addEventListener("mousemove", function (e) {
    if (!start || ws.readyState !== WebSocket.OPEN) return;
    const p = point(e);
    ws.send(JSON.stringify({ selection: { x0: start.x, y0: start.y, x1: p.x, y1: p.y } }));
  });
  window.addEventListener("mouseup", function () { start = null; });

  // cross-highlight: hovering a trigger dims every other pie slice
  document.querySelectorAll(".highlight-trigger").forEach(function (el) {
    el.addEventListener("mouseenter", async function () {
      await fetch(base + "/highlight", { method: "POST", body: JSON.stringify({ label: el.getAttribute("data-highlight-class") }) });
      refresh(["pie"]);
    });
    el.addEventListener("mouseleave", async function () {
      await fetch(base + "/highlight", { method: "DELETE" });
      refresh(["pie"]);
    });
  });

  // pie tooltip: slices run clockwise from the positive x axis in slice order
  const pie = document.getElementById("pie");
  const tip = document.getElementById("tooltip");
  let hovered = null;
  let pending = Promise.resolve();
  function tooltip(event, label, x, y) {
    pending = pending.then(function () {
      return fetch(base + "/pie/tooltip", { method: "POST", body: JSON.stringify({ event: event, label: label, x: x, y: y }) });
    }).then(function (r) { return r.ok ? r.json() : null; }).then(function (st) {
      if (!st) return;
      tip.innerHTML = st.html;
      tip.style.left = st.left + "px";
      tip.style.top = st.top + "px";
      tip.style.visibility = st.visible ? "visible" : "hidden";
    }).catch(function () {});
  }
  function sliceAt(e) {
    const r = pie.getBoundingClientRect();
    const dx = e.clientX - r.left - pieGeometry.cx;
    const dy = e.clientY - r.top - pieGeometry.cy;
    if (dx * dx + dy * dy > pieGeometry.radius * pieGeometry.radius) return null;
    let angle = Math.atan2(dy, dx);
    if (angle < 0) angle += 2 * Math.PI;
    const total = slices.reduce(function (n, s) { return n + s.value; }, 0);
    let end = 0;
    for (const s of slices) {
      end += 2 * Math.PI * s.value / total;
      if (angle <= end) return s;
    }
    return null;
  }
  pie.addEventListener("mousemove", function (e) {
    const s = sliceAt(e);
    if (s !== hovered) {
      if (hovered) tooltip("mouseleave", hovered.label, 0, 0);
      if (s) tooltip("mouseover", s.label, 0, 0);
      hovered = s;
    }
    if (s) tooltip("mousemove", s.label, e.pageX, e.pageY);
  });
  pie.addEventListener("mouseleave", function () {
    if (hovered) tooltip("mouseleave", hovered.label, 0, 0);
    hovered = null;
  });
})();
</script>
</body>
</html>
`
