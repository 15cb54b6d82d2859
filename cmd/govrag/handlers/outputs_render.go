package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AayushV4/gov-doc-rag/internal/provisioning"
)

var (
	outTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	outSectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3b82f6"))

	outDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))
)

// renderOutputs produces a styled rendition of the published contract.
func renderOutputs(outputs *provisioning.Outputs) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(outTitleStyle.Render(fmt.Sprintf("  govrag outputs: %s (%s)", outputs.Project, outputs.Region)))
	b.WriteString("\n")
	b.WriteString(outDimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	b.WriteString(outSectionStyle.Render("  Cluster"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    endpoint:    %s\n", outputs.ClusterEndpoint)
	fmt.Fprintf(&b, "    oidc issuer: %s\n", outputs.OIDCIssuer)
	b.WriteString("\n")

	renderOutputSection(&b, "Buckets", outputs.Buckets)
	renderOutputSection(&b, "Registries", outputs.RegistryURLs)
	renderOutputSection(&b, "Roles", outputs.RoleARNs)
	renderOutputSection(&b, "Log Groups", outputs.LogGroups)
	renderOutputSection(&b, "Keys", outputs.KeyARNs)

	return b.String()
}

// renderOutputSection renders one map section with sorted keys.
func renderOutputSection(b *strings.Builder, title string, entries map[string]string) {
	if len(entries) == 0 {
		return
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString(outSectionStyle.Render("  " + title))
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(b, "    %-20s %s\n", k, entries[k])
	}
	b.WriteString("\n")
}
