// Package graph renders the state graph as Mermaid flowchart syntax.
package graph

import (
	"fmt"
	"strings"

	"github.com/verdict-dev/verdict/pkg/domain"
)

// Overlay highlights the outcome of one resolution on top of the static
// graph: enabled states are tinted, the engaged ones emphasized.
type Overlay struct {
	Enabled []string
	Engaged []string
}

// GenerateMermaid produces a Mermaid flowchart from the state set.
// Relation styling:
//   - extends: solid arrow toward the extended state
//   - overrides: dashed arrow toward the suppressed state
//   - counter: dotted link between origin and counter-state
//
// Counter-states are drawn as stadium shapes, declared states as
// rectangles. Conditions appear inside the node label.
func GenerateMermaid(states []domain.StateInfo, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	counterOrigin := make(map[string]string)
	for _, st := range states {
		if st.Counter {
			counterOrigin[st.Name] = st.Origin
		}
	}

	for _, st := range states {
		safeID := sanitizeMermaidID(st.Name)

		opener, closer := "[", "]"
		if st.Counter {
			opener, closer = "([", "])" // Stadium
		}

		label := st.Name
		if len(st.Conditions) > 0 {
			cond := strings.ReplaceAll(strings.Join(st.Conditions, " && "), "\"", "'")
			label = fmt.Sprintf("%s <br/> %s", st.Name, cond)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, target := range st.Extends {
			sb.WriteString(fmt.Sprintf("    %s -- extends --> %s\n", safeID, sanitizeMermaidID(target)))
		}
		for _, target := range st.Overrides {
			sb.WriteString(fmt.Sprintf("    %s -. overrides .-> %s\n", safeID, sanitizeMermaidID(target)))
		}
		if origin, ok := counterOrigin[st.Name]; ok {
			sb.WriteString(fmt.Sprintf("    %s -. counters .- %s\n", sanitizeMermaidID(origin), safeID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast regardless of theme.
		sb.WriteString("    classDef enabled fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef engaged fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		engaged := make(map[string]bool, len(overlay.Engaged))
		for _, name := range overlay.Engaged {
			engaged[sanitizeMermaidID(name)] = true
		}
		for _, name := range overlay.Enabled {
			safeID := sanitizeMermaidID(name)
			if safeID == "" || engaged[safeID] {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s enabled;\n", safeID))
		}
		for _, name := range overlay.Engaged {
			if safeID := sanitizeMermaidID(name); safeID != "" {
				sb.WriteString(fmt.Sprintf("    class %s engaged;\n", safeID))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
