package llm

import (
	"fmt"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/drift"
)

const systemPrompt = "You are a senior technical writer assisting developers in " +
	"keeping documentation aligned with code changes. " +
	"Analyze the provided change and documentation context. " +
	"Suggest concise, actionable documentation updates. " +
	"Respond as JSON with keys: summary (string), " +
	"severity (critical|medium|low), suggestion (string), " +
	"doc_excerpt (optional string)."

// buildUserPrompt assembles the per-candidate message: the change, the
// symbol's source, every documentation reference with its changed flag,
// and the heuristic's own description.
func buildUserPrompt(cand drift.Candidate) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Code change (type: %s):\n%s\n", cand.Kind, cand.Change.Summary())
	if sym := cand.Change.Symbol(); sym != nil && sym.Source != "" {
		sb.WriteString("\n")
		sb.WriteString(sym.Source)
		sb.WriteString("\n")
	}

	sb.WriteString("\nDocumentation references")
	if len(cand.References) == 0 {
		sb.WriteString(" (changed=n/a):\nNo related documentation found.\n")
	} else {
		flags := make([]string, 0, len(cand.References))
		for _, ref := range cand.References {
			flags = append(flags, yesNo(ref.Changed))
		}
		fmt.Fprintf(&sb, " (changed=%s):\n", strings.Join(flags, ", "))
		for i, ref := range cand.References {
			if i > 0 {
				sb.WriteString("\n---\n\n")
			}
			fmt.Fprintf(&sb, "%s:%d (changed=%s):\n%s\n", ref.Path, ref.Line, yesNo(ref.Changed), ref.Excerpt)
		}
	}

	fmt.Fprintf(&sb, "\nWhy it matters: %s", cand.Description)
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
