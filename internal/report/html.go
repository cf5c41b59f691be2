package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/aggregate"
	"github.com/danieldrasin/poker-scenario-analyzer/internal/fileutil"
)

// Data is everything the HTML report renders.
type Data struct {
	Title       string
	GeneratedAt time.Time
	Sessions    []aggregate.SessionSummary
	Aggregate   []aggregate.StyleAggregate
}

// WriteHTML renders the report and writes it atomically.
func WriteHTML(path string, data Data) error {
	if data.Title == "" {
		data.Title = "Style Simulation Report"
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"signed": func(v int) string { return fmt.Sprintf("%+d", v) },
	"f1":     func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f3":     func(v float64) string { return fmt.Sprintf("%.3f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
:root { --bg:#0f172a; --surface:#1e293b; --surface2:#334155; --text:#e2e8f0; --text-dim:#94a3b8; --green:#22c55e; --red:#ef4444; --accent:#8b5cf6; }
body { background:var(--bg); color:var(--text); font-family:system-ui,sans-serif; margin:0; padding:2rem; }
h1 { color:var(--accent); }
h2 { border-bottom:1px solid var(--surface2); padding-bottom:0.4rem; margin-top:2.5rem; }
.data-table { border-collapse:collapse; width:100%; margin:1rem 0; background:var(--surface); border-radius:8px; overflow:hidden; }
.data-table th { background:var(--surface2); text-align:right; padding:0.5rem 0.75rem; }
.data-table th:first-child, .data-table td:first-child { text-align:left; }
.data-table td { text-align:right; padding:0.45rem 0.75rem; border-top:1px solid var(--surface2); }
.pos { color:var(--green); font-weight:600; }
.neg { color:var(--red); font-weight:600; }
.dim { color:var(--text-dim); font-size:0.85rem; }
.pattern { background:var(--surface); border-left:3px solid var(--accent); padding:0.6rem 1rem; margin:0.5rem 0; }
footer { color:var(--text-dim); margin-top:3rem; padding-top:1.5rem; border-top:1px solid var(--surface2); font-size:0.85rem; text-align:center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="dim">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

{{if .Aggregate}}
<h2>Cross-Session Overview</h2>
<table class="data-table">
<thead><tr><th>Style</th><th>Sessions</th><th>Hands</th><th>Total Profit</th><th>Avg/Session</th><th>BB/100</th><th>Win Rate</th><th>Bust Rate</th></tr></thead>
<tbody>
{{range .Aggregate}}
<tr>
<td>{{.Style}}</td>
<td>{{.Sessions}}</td>
<td>{{.TotalHands}}</td>
<td class="{{if ge .TotalProfit 0}}pos{{else}}neg{{end}}">{{signed .TotalProfit}}</td>
<td>{{f1 .AvgProfit}}</td>
<td>{{f2 .BB100}}</td>
<td>{{f1 .WinRate}}%</td>
<td>{{f1 .BustRate}}%</td>
</tr>
{{end}}
</tbody>
</table>

<h2>Risk Profile</h2>
<table class="data-table">
<thead><tr><th>Style</th><th>Avg Volatility</th><th>Avg Sharpe</th><th>Avg Max Drawdown</th><th>Profit Std</th><th>Best Session</th><th>Worst Session</th><th>Avg Win Streak</th><th>Avg Lose Streak</th></tr></thead>
<tbody>
{{range .Aggregate}}
<tr>
<td>{{.Style}}</td>
<td>{{f1 .AvgVolatility}}</td>
<td>{{f3 .AvgSharpe}}</td>
<td>{{f1 .AvgMaxDrawdown}}</td>
<td>{{f1 .ProfitStd}}</td>
<td class="{{if ge .BestSession 0}}pos{{else}}neg{{end}}">{{signed .BestSession}}</td>
<td class="{{if ge .WorstSession 0}}pos{{else}}neg{{end}}">{{signed .WorstSession}}</td>
<td>{{f1 .AvgWinStreak}}</td>
<td>{{f1 .AvgLoseStreak}}</td>
</tr>
{{end}}
</tbody>
</table>

<h2>Pattern Analysis</h2>
{{range .Aggregate}}
<div class="pattern"><strong>{{.Style}}</strong>: {{.Pattern}}</div>
{{end}}
{{end}}

{{range .Sessions}}
<h2>Session {{.SessionID}}</h2>
<p class="dim">{{.Hands}} hands completed, {{.AbortedHands}} aborted, big blind {{.BigBlind}}</p>
<table class="data-table">
<thead><tr><th>Style</th><th>Hands</th><th>Wins</th><th>Win Rate</th><th>Profit</th><th>BB/100</th><th>VPIP</th><th>WTSD</th><th>WSD</th><th>Busts</th><th>Oracle Followed</th><th>Oracle Ignored</th><th>Trend</th></tr></thead>
<tbody>
{{range .Styles}}
<tr>
<td>{{.Style}}</td>
<td>{{.Hands}}</td>
<td>{{.Wins}}</td>
<td>{{f1 .WinRate}}%</td>
<td class="{{if ge .TotalProfit 0}}pos{{else}}neg{{end}}">{{signed .TotalProfit}}</td>
<td>{{f2 .BB100}}</td>
<td>{{f1 .VPIPRate}}%</td>
<td>{{f1 .WTSD}}%</td>
<td>{{f1 .WSD}}%</td>
<td>{{.Busts}}</td>
<td>{{.OracleFollowed}}</td>
<td>{{.OracleIgnored}}</td>
<td>{{.Trend}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}

<footer>Head-to-head profit attribution, where shown, is an approximation that does not isolate pairwise pot contributions.</footer>
</body>
</html>
`))
