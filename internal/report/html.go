package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/drift"
)

type htmlRenderer struct{}

func (htmlRenderer) Ext() string { return "html" }

func (htmlRenderer) Render(r *drift.Report) (string, error) {
	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	return sb.String(), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Documentation Drift Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #24292f; }
  h1 { border-bottom: 1px solid #d0d7de; padding-bottom: .5rem; }
  .meta { color: #57606a; font-size: .9rem; }
  .issue { border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem; margin: 1rem 0; }
  .badge { display: inline-block; border-radius: 4px; padding: .1rem .5rem; font-size: .8rem; font-weight: 600; color: #fff; text-transform: uppercase; }
  .critical { background: #cf222e; }
  .medium { background: #bf8700; }
  .low { background: #6e7781; }
  .refs { color: #57606a; font-size: .85rem; }
  code { background: #f6f8fa; padding: .1rem .3rem; border-radius: 4px; }
  .warnings { color: #9a6700; font-size: .9rem; }
</style>
</head>
<body>
<h1>Documentation Drift Report</h1>
<p class="meta">{{.Repo}} &middot; {{.From}}..{{.To}} &middot; {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>
<p class="meta">{{.Summary.Total}} issue(s): {{.Summary.Critical}} critical, {{.Summary.Medium}} medium, {{.Summary.Low}} low</p>
{{if not .Issues}}<p>No documentation drift detected.</p>{{end}}
{{range .Issues}}
<div class="issue">
  <p><span class="badge {{.Severity}}">{{.Severity}}</span> <code>{{.Change.Name}}</code> &mdash; {{.Kind}}</p>
  <p>{{.Description}}</p>
  {{if .Summary}}<p>{{.Summary}}</p>{{end}}
  {{if .Suggestion}}<p><strong>Suggestion:</strong> {{.Suggestion}}</p>{{end}}
  {{if .References}}
  <ul class="refs">
    {{range .References}}<li>{{.Path}}:{{.Line}} &mdash; {{.Excerpt}}</li>{{end}}
  </ul>
  {{end}}
</div>
{{end}}
{{if .Warnings}}
<div class="warnings">
  <p>Unparseable files:</p>
  <ul>{{range .Warnings}}<li>{{.Path}} ({{.Revision}}): {{.Message}}</li>{{end}}</ul>
</div>
{{end}}
</body>
</html>
`))
