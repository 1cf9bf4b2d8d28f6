// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/company-enricher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow caps keyword and what-they-do lists
	maxItemsToShow = 8
)

// NoSignalsText is printed in place of an empty signal list.
const NoSignalsText = "No meaningful signals detected."

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PrintEnrichment outputs an enrichment report. company may be nil for
// ad hoc URLs. Signals are listed strongest first.
func (p *Printer) PrintEnrichment(company *types.Company, data *types.EnrichedData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	inner := boxWidth - 4

	if company != nil {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", company.Name))
		if company.Industry != "" {
			sb.WriteString(fmt.Sprintf("Industry: %s\n", company.Industry))
		}
		sb.WriteString(fmt.Sprintf("Website:  %s\n", company.Website))
		sb.WriteString("\n")
	}

	if data.Summary != "" {
		sb.WriteString("Summary:\n")
		for _, line := range wrap(data.Summary, inner-2) {
			sb.WriteString("  " + line + "\n")
		}
		sb.WriteString("\n")
	}

	if len(data.WhatTheyDo) > 0 {
		sb.WriteString("What they do:\n")
		writeList(&sb, data.WhatTheyDo)
		sb.WriteString("\n")
	}

	if len(data.Keywords) > 0 {
		shown := data.Keywords[:min(len(data.Keywords), maxItemsToShow)]
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(shown, ", ")))
		if len(data.Keywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Keywords)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Signals:\n")
	if len(data.Signals) == 0 {
		sb.WriteString("  " + NoSignalsText + "\n")
	}
	for _, sig := range types.SortSignals(data.Signals) {
		sb.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", sig.Confidence, sig.Title, sig.Category))
		for _, line := range wrap(sig.Description, inner-6) {
			sb.WriteString("      " + line + "\n")
		}
		if sig.DetectedFrom != "" {
			sb.WriteString(fmt.Sprintf("      from: %q\n", sig.DetectedFrom))
		}
	}

	if len(data.Sources) > 0 {
		sb.WriteString("\nSources:\n")
		for _, src := range data.Sources {
			sb.WriteString(fmt.Sprintf("  • %s\n", src))
		}
	}

	if data.Timestamp != "" {
		sb.WriteString(fmt.Sprintf("\nGenerated: %s\n", data.Timestamp))
	}

	p.printBox("COMPANY INTELLIGENCE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintCompanies outputs a one-line-per-company table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCompanies(companies []types.Company) {
	if len(companies) == 0 {
		fmt.Fprintln(p.out, "No companies found.")
		return
	}
	for _, c := range companies {
		fmt.Fprintf(p.out, "%-4s %-20s %-18s %s\n", c.ID, c.Name, c.Industry, c.Website)
	}
}
