package results

import (
	"fmt"
	"html/template"
	"os"
)

// WriteHTML generates a self-contained HTML report (inline CSS, no
// external assets) with a summary dashboard and the full match table.
func WriteHTML(path string, result *ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, result); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Voluta Scan Report</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
    line-height: 1.6; color: #333; background: #f5f5f5; padding: 20px;
  }
  .container { max-width: 960px; margin: 0 auto; }
  .card { background: #fff; border-radius: 6px; padding: 20px; margin-bottom: 20px;
          box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  h1 { font-size: 22px; margin-bottom: 4px; }
  .meta { color: #777; font-size: 13px; }
  .stats { display: flex; gap: 24px; margin-top: 12px; }
  .stat .n { font-size: 26px; font-weight: 600; }
  .stat .l { color: #777; font-size: 12px; text-transform: uppercase; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #eee; }
  th { color: #555; font-size: 12px; text-transform: uppercase; }
  code { background: #f0f0f0; padding: 1px 5px; border-radius: 3px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h1>Voluta Scan Report</h1>
    <div class="meta">{{.Input}} &middot; mode {{.Mode}} &middot; {{.StartTime.Format "2006-01-02 15:04:05"}}</div>
    <div class="stats">
      <div class="stat"><div class="n">{{.Summary.TotalMatches}}</div><div class="l">matches</div></div>
      <div class="stat"><div class="n">{{len .Patterns}}</div><div class="l">patterns</div></div>
      <div class="stat"><div class="n">{{.Summary.Duration}}</div><div class="l">duration</div></div>
    </div>
  </div>
  <div class="card">
    <h2>Patterns</h2>
    <table>
      <tr><th>Pattern</th><th>Matches</th></tr>
      {{range .Summary.PerPattern}}<tr><td><code>{{.Pattern}}</code></td><td>{{.Count}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="card">
    <h2>Matches</h2>
    <table>
      <tr><th>Start</th><th>End</th><th>Pattern</th></tr>
      {{range .Matches}}<tr><td>{{.Start}}</td><td>{{.End}}</td><td><code>{{.Pattern}}</code></td></tr>
      {{end}}
    </table>
  </div>
</div>
</body>
</html>
`))
