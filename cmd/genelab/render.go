package main

import (
	"fmt"
	"strings"

	"genelab/internal/genome"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	outputStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	encStyle    = lipgloss.NewStyle().Faint(true)
)

// renderGenome lists each gene as "if <condition> then <output> = <expression>"
// under a version/gene-count header.
func renderGenome(g *genome.Genome) string {
	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("genome v%c, %d genes", g.Header(), g.Len())))

	for i, gene := range g.Genes() {
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			indexStyle.Render(fmt.Sprintf("%3d  ", i)),
			"if "+gene.Condition.String()+" then ",
			outputStyle.Render(gene.Output.String()),
			" = "+gene.Expression.String(),
		)
		lines = append(lines, line, encStyle.Render("     "+gene.Encode()))
	}
	return strings.Join(lines, "\n")
}
