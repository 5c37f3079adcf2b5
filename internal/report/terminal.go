package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Adjoshi06/driftguard/internal/drift"
)

var (
	colorCritical = lipgloss.Color("#E74C3C")
	colorMedium   = lipgloss.Color("#F4D03F")
	colorLow      = lipgloss.Color("#7F8C8D")
	colorAccent   = lipgloss.Color("#58A6FF")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleSymbol  = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorLow)
	styleWarning = lipgloss.NewStyle().Foreground(colorMedium)
	styleClean   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))

	severityStyles = map[drift.Severity]lipgloss.Style{
		drift.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(colorCritical),
		drift.SeverityMedium:   lipgloss.NewStyle().Bold(true).Foreground(colorMedium),
		drift.SeverityLow:      lipgloss.NewStyle().Foreground(colorLow),
	}
)

type terminalRenderer struct{}

func (terminalRenderer) Ext() string { return "txt" }

func (terminalRenderer) Render(r *drift.Report) (string, error) {
	var sb strings.Builder

	sb.WriteString(styleTitle.Render("Documentation Drift Report"))
	sb.WriteString("\n")
	sb.WriteString(styleMuted.Render(fmt.Sprintf("%s  %s..%s  %s", r.Repo, r.From, r.To, r.GeneratedAt.Format("2006-01-02 15:04 MST"))))
	sb.WriteString("\n\n")

	if len(r.Issues) == 0 {
		sb.WriteString(styleClean.Render("✓ No documentation drift detected."))
		sb.WriteString("\n")
	}

	for i, issue := range r.Issues {
		badge := severityBadge(issue.Severity)
		sb.WriteString(fmt.Sprintf("%d. %s %s %s\n", i+1, badge, styleSymbol.Render(issue.Change.Name), styleMuted.Render("("+string(issue.Kind)+")")))
		if path := issue.Change.Path(); path != "" {
			sb.WriteString(styleMuted.Render("   "+path) + "\n")
		}
		sb.WriteString("   " + issue.Description + "\n")
		if issue.Summary != "" && issue.Summary != issue.Description {
			sb.WriteString("   " + issue.Summary + "\n")
		}
		if issue.Suggestion != "" {
			sb.WriteString("   → " + issue.Suggestion + "\n")
		}
		for _, ref := range issue.References {
			sb.WriteString(styleMuted.Render(fmt.Sprintf("   • %s:%d  %s", ref.Path, ref.Line, ref.Excerpt)) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(styleWarning.Render(fmt.Sprintf("⚠ %d file(s) could not be parsed:", len(r.Warnings))))
		sb.WriteString("\n")
		for _, w := range r.Warnings {
			sb.WriteString(styleMuted.Render(fmt.Sprintf("   %s (%s): %s", w.Path, w.Revision, w.Message)) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(summaryLine(r.Summary))
	sb.WriteString("\n")
	return sb.String(), nil
}

func severityBadge(s drift.Severity) string {
	style, ok := severityStyles[s]
	if !ok {
		style = styleMuted
	}
	return style.Render("[" + strings.ToUpper(string(s)) + "]")
}

func summaryLine(s drift.Summary) string {
	return styleMuted.Render(fmt.Sprintf(
		"%d issue(s): %d critical, %d medium, %d low",
		s.Total, s.Critical, s.Medium, s.Low,
	))
}
