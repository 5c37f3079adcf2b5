// Package report renders the final drift report for terminals, machines,
// and browsers, and persists it on request.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/drift"
)

// Renderer turns one report into its output representation.
type Renderer interface {
	Render(r *drift.Report) (string, error)
	Ext() string
}

// RendererFor returns the renderer for an output format name.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "terminal":
		return &terminalRenderer{}, nil
	case "json":
		return &jsonRenderer{}, nil
	case "html":
		return &htmlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected terminal, json or html)", format)
	}
}

// Save renders the report and writes it under dir, creating the directory
// if needed. Returns the written file's path.
func Save(r *drift.Report, dir string, renderer Renderer) (string, error) {
	out, err := renderer.Render(r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	name := fmt.Sprintf("drift_report_%s.%s", r.GeneratedAt.UTC().Format("20060102T150405Z"), renderer.Ext())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

type jsonRenderer struct{}

func (jsonRenderer) Ext() string { return "json" }

func (jsonRenderer) Render(r *drift.Report) (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(out), nil
}
