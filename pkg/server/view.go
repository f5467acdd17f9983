package server

import (
	"html/template"
	"net/http"

	"github.com/matzehuels/causeview/pkg/driver"
)

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #fafafa; color: #333; }
  header { padding: 12px 20px; display: flex; align-items: center; gap: 16px; border-bottom: 1px solid #ddd; background: #fff; }
  header h1 { font-size: 18px; margin: 0; }
  #step-label { font-variant-numeric: tabular-nums; min-width: 3em; }
  #warning { color: #b36b00; font-size: 13px; }
  #plot-title { text-align: center; font-size: 16px; font-weight: 600; margin: 12px 0 4px; }
  #plot { width: 100%; height: {{.Height}}px; cursor: grab; background: #fff; }
  #plot.dragging { cursor: grabbing; }
  #tooltip { position: fixed; pointer-events: none; background: rgba(30,30,30,0.9); color: #fff;
             padding: 6px 8px; border-radius: 4px; font-size: 12px; display: none; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <label for="step">Step</label>
  <input id="step" type="range" min="{{.MinStep}}" max="{{.MaxStep}}" step="1" value="{{.Step}}">
  <span id="step-label">{{.Step}}</span>
  <span id="warning"></span>
</header>
<h2 id="plot-title">{{.PlotTitle}}</h2>
<svg id="plot" xmlns="http://www.w3.org/2000/svg"><g id="viewport"></g></svg>
<div id="tooltip"></div>
<script>
(function () {
  const NS = "http://www.w3.org/2000/svg";
  const plot = document.getElementById("plot");
  const viewport = document.getElementById("viewport");
  const slider = document.getElementById("step");
  const label = document.getElementById("step-label");
  const title = document.getElementById("plot-title");
  const warning = document.getElementById("warning");
  const tooltip = document.getElementById("tooltip");
  let view = { x: 0, y: 0, w: 1, h: 1 };
  let seq = 0;

  function setView(v) {
    view = v;
    plot.setAttribute("viewBox", [v.x, v.y, v.w, v.h].join(" "));
  }

  function fit(points) {
    if (points.length === 0) { setView({ x: -50, y: -50, w: 100, h: 100 }); return; }
    let minX = Infinity, minY = Infinity, maxX = -Infinity, maxY = -Infinity;
    for (const p of points) {
      const r = p.size / 2;
      minX = Math.min(minX, p.x - r); maxX = Math.max(maxX, p.x + r);
      minY = Math.min(minY, p.y - r); maxY = Math.max(maxY, p.y + r);
    }
    const pad = 20;
    setView({ x: minX - pad, y: minY - pad, w: maxX - minX + 2 * pad, h: maxY - minY + 2 * pad });
  }

  function draw(frame) {
    viewport.replaceChildren();
    for (const l of frame.scene.lines) {
      const e = document.createElementNS(NS, "line");
      e.setAttribute("x1", l.x0); e.setAttribute("y1", l.y0);
      e.setAttribute("x2", l.x1); e.setAttribute("y2", l.y1);
      e.setAttribute("stroke", "#b0b0b0"); e.setAttribute("stroke-width", "1");
      viewport.appendChild(e);
    }
    for (const p of frame.scene.points) {
      const c = document.createElementNS(NS, "circle");
      c.setAttribute("cx", p.x); c.setAttribute("cy", p.y); c.setAttribute("r", p.size / 2);
      c.setAttribute("fill", p.color); c.setAttribute("stroke", "#fff");
      c.addEventListener("mousemove", (ev) => {
        tooltip.innerHTML = p.hover.split("<br>").map(escapeHTML).join("<br>");
        tooltip.style.left = (ev.clientX + 12) + "px";
        tooltip.style.top = (ev.clientY + 12) + "px";
        tooltip.style.display = "block";
      });
      c.addEventListener("mouseleave", () => { tooltip.style.display = "none"; });
      viewport.appendChild(c);
    }
    title.textContent = frame.title;
    warning.textContent = frame.warning ? "layout fallback: " + frame.warning : "";
    fit(frame.scene.points);
  }

  function escapeHTML(s) {
    return s.replace(/[&<>"']/g, (ch) => ({ "&": "&amp;", "<": "&lt;", ">": "&gt;", '"': "&quot;", "'": "&#39;" })[ch]);
  }

  async function load(step) {
    const mine = ++seq;
    label.textContent = step;
    const resp = await fetch("/api/scene?step=" + encodeURIComponent(step));
    const body = await resp.json();
    if (mine !== seq) return;
    if (!resp.ok) { warning.textContent = body.error.message; return; }
    draw(body);
  }

  slider.addEventListener("input", () => load(slider.value));

  plot.addEventListener("wheel", (ev) => {
    ev.preventDefault();
    const k = ev.deltaY < 0 ? 0.9 : 1.1;
    const rect = plot.getBoundingClientRect();
    const fx = (ev.clientX - rect.left) / rect.width;
    const fy = (ev.clientY - rect.top) / rect.height;
    const w = view.w * k, h = view.h * k;
    setView({ x: view.x + (view.w - w) * fx, y: view.y + (view.h - h) * fy, w: w, h: h });
  }, { passive: false });

  let drag = null;
  plot.addEventListener("mousedown", (ev) => { drag = { x: ev.clientX, y: ev.clientY, v: view }; plot.classList.add("dragging"); });
  window.addEventListener("mouseup", () => { drag = null; plot.classList.remove("dragging"); });
  window.addEventListener("mousemove", (ev) => {
    if (!drag) return;
    const rect = plot.getBoundingClientRect();
    const dx = (ev.clientX - drag.x) * drag.v.w / rect.width;
    const dy = (ev.clientY - drag.y) * drag.v.h / rect.height;
    setView({ x: drag.v.x - dx, y: drag.v.y - dy, w: drag.v.w, h: drag.v.h });
  });

  load(slider.value);
})();
</script>
</body>
</html>
`))

type viewData struct {
	Title     string
	PlotTitle string
	Height    int
	MinStep   int
	MaxStep   int
	Step      int
}

func (s *Server) view(w http.ResponseWriter, _ *http.Request) {
	lo, hi := s.driver.Range()
	data := viewData{
		Title:   s.opts.Title,
		Height:  s.opts.Height,
		MinStep: lo,
		MaxStep: hi,
		Step:    s.driver.Step(),
	}
	data.PlotTitle = driver.Title(data.Step)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewTemplate.Execute(w, data); err != nil {
		s.logger.Error("render view", "err", err)
	}
}
