package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/SaturnOperator/ir2hid/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>IR &gt; HID</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.connected { color: green; }
.disconnected { color: red; }
.waiting { color: #888; }
</style>
</head>
<body>
<h1>IR &gt; HID{{if .OutputConnected}} [Connected]{{end}}</h1>

<h2>Last Signal</h2>
<table>
{{if .HasSignal}}
<tr><td colspan="2">{{.Proto}}</td></tr>
{{if .Addr}}<tr><td colspan="2">{{.Addr}}</td></tr>{{end}}
{{if .Cmd}}<tr><td colspan="2">{{.Cmd}}</td></tr>{{end}}
{{else}}
<tr><td colspan="2" class="waiting">Waiting for signal...</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Output</th><td class="{{if .OutputConnected}}connected{{else}}disconnected{{end}}">{{if .OutputConnected}}connected{{else}}disconnected{{end}}</td></tr>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{end}}
</table>

<h2>Signals</h2>
<table>
<tr><th>Received</th><td>{{.Counts.Received}}</td></tr>
<tr><th>Emitted</th><td>{{.Counts.Emitted}}</td></tr>
<tr><th>No mapping</th><td>{{.Counts.NoMapping}}</td></tr>
<tr><th>Debounced</th><td>{{.Counts.Debounced}}</td></tr>
<tr><th>Repeats ignored</th><td>{{.Counts.Repeats}}</td></tr>
<tr><th>Skipped (disconnected)</th><td>{{.Counts.Skipped}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Mapping entries</th><td>{{.TableEntries}}</td></tr>
<tr><th>Mapping file</th><td>{{.Config.LUTPath}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Queue depth</th><td>{{.Config.QueueDepth}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
