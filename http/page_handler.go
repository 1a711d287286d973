package httpapi

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yourorg/housemap-api/internal/mapengine"
	"github.com/yourorg/housemap-api/internal/mapengine/gmaps"
	"github.com/yourorg/housemap-api/internal/pipeline"
)

type PageDeps struct {
	Pipeline *pipeline.Renderer
	Engine   *gmaps.Engine
}

type pageData struct {
	ScriptSrc template.URL
	MapType   string
	MapTypes  []string
	Center    mapengine.Coord
	Fitted    bool
	Markers   template.JS
	State     pipeline.State
}

// RegisterPage serves the interactive map page. The page carries the
// current snapshot of placed markers; the SDK script is injected with a
// one-shot init callback.
func RegisterPage(r chi.Router, d PageDeps) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		state := d.Pipeline.State()

		var snap gmaps.PageSnapshot
		if page := d.Engine.Page(); page != nil {
			snap = page.Snapshot()
		}
		if snap.MapType == "" {
			snap.MapType = state.MapType
		}
		if snap.Markers == nil {
			snap.Markers = []gmaps.MarkerView{}
		}

		// json.Marshal escapes angle brackets, so the payload is safe to
		// inline inside a script element.
		markerJSON, err := json.Marshal(snap.Markers)
		if err != nil {
			http.Error(w, "marker encoding failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			ScriptSrc: template.URL(d.Engine.ScriptURL() + "&callback=initHouseMap"),
			MapType:   string(snap.MapType),
			MapTypes: []string{
				string(mapengine.MapTypeRoadmap),
				string(mapengine.MapTypeSatellite),
				string(mapengine.MapTypeHybrid),
				string(mapengine.MapTypeTerrain),
			},
			Center:  snap.Center,
			Fitted:  snap.Fitted,
			Markers: template.JS(markerJSON),
			State:   state,
		}
		if err := pageTmpl.Execute(w, data); err != nil {
			http.Error(w, "page rendering failed", http.StatusInternalServerError)
		}
	})
}

var pageTmpl = template.Must(template.New("map").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>House Map</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; }
header { display: flex; align-items: center; gap: 1rem; padding: .5rem 1rem; }
header h1 { font-size: 1.1rem; margin: 0; }
#map { height: calc(100vh - 3.5rem); }
.banner { padding: .75rem 1rem; background: #fde8e8; color: #7f1d1d; }
.notice { padding: .75rem 1rem; background: #fef9c3; color: #713f12; }
.skipped { padding: .5rem 1rem; font-size: .85rem; color: #555; }
.popup { max-width: 320px; }
.popup-photo { width: 100%; }
.popup-desc-toggle { margin-top: .5rem; }
</style>
</head>
<body>
<header>
<h1>House Map</h1>
<label>Map type
<select id="maptype">
{{$current := .MapType}}{{range .MapTypes}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
{{if .State.Loading}}<span class="loading">Loading…</span>{{end}}
</header>
{{if .State.Error}}<div class="banner">{{.State.Error}}</div>{{else}}<div id="map"></div>{{end}}
{{if .State.Message}}<div class="notice">{{.State.Message}}</div>{{end}}
{{if .State.Skipped}}<div class="skipped">Not shown:
<ul>{{range .State.Skipped}}<li>{{.Address}} ({{.Reason}})</li>{{end}}</ul>
</div>{{end}}
<script>
var page = {
  mapType: "{{.MapType}}",
  center: { lat: {{.Center.Lat}}, lng: {{.Center.Lng}} },
  fitted: {{.Fitted}},
  markers: {{.Markers}}
};

function initHouseMap() {
  var el = document.getElementById("map");
  if (!el) { return; }
  var map = new google.maps.Map(el, {
    center: page.markers.length ? page.center : { lat: 39.8283, lng: -98.5795 },
    zoom: page.fitted ? 11 : 4,
    mapTypeId: page.mapType
  });
  var bounds = new google.maps.LatLngBounds();
  var info = new google.maps.InfoWindow();
  page.markers.forEach(function (mk) {
    var marker = new google.maps.Marker({
      position: { lat: mk.lat, lng: mk.lng },
      map: map,
      label: mk.label,
      title: mk.title
    });
    bounds.extend(marker.getPosition());
    marker.addListener("click", function () {
      info.setContent(mk.popup);
      info.open({ map: map, anchor: marker });
    });
  });
  if (page.markers.length > 1) { map.fitBounds(bounds); }

  document.getElementById("maptype").addEventListener("change", function (e) {
    map.setMapTypeId(e.target.value);
    fetch("/api/maptype", {
      method: "PUT",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ mapType: e.target.value })
    });
  });

  document.addEventListener("click", function (e) {
    var btn = e.target;
    if (!btn.classList || !btn.classList.contains("popup-desc-toggle")) { return; }
    var expanded = btn.getAttribute("aria-expanded") === "true";
    btn.setAttribute("aria-expanded", String(!expanded));
    var desc = btn.nextElementSibling;
    if (desc) { desc.hidden = expanded; }
  });
}
</script>
<script async src="{{.ScriptSrc}}"></script>
</body>
</html>
`))
