// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package console renders the human-facing progress of a sync run: the build
// banner, one banner per phase, one line per processed item and a final
// summary. Structured logs go to the logger; this output is for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/photosync/models"
)

type styles struct {
	banner    lipgloss.Style
	phase     lipgloss.Style
	committed lipgloss.Style
	recovered lipgloss.Style
	skipped   lipgloss.Style
	faint     lipgloss.Style
	errorText lipgloss.Style
	summary   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:    r.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 2),
		phase:     r.NewStyle().Bold(true).Underline(true),
		committed: r.NewStyle().Foreground(lipgloss.Color("2")),
		recovered: r.NewStyle().Foreground(lipgloss.Color("6")),
		skipped:   r.NewStyle().Foreground(lipgloss.Color("3")),
		faint:     r.NewStyle().Faint(true),
		errorText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		summary:   r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// Printer writes progress to a terminal. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	styles styles
}

// NewPrinter returns a Printer writing to out. Colors are used only when out
// is a terminal that supports them.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: newStyles(lipgloss.NewRenderer(out))}
}

// BuildInfo prints the application banner.
func (p *Printer) BuildInfo(info models.AppBuildInfo) {
	body := fmt.Sprintf("photosync %s\nbuild date: %s\ncommit: %s",
		info.BuildVersion(), info.BuildDate(), info.BuildCommit())
	p.println(p.styles.banner.Render(body))
}

// PhaseStarted prints the banner of a phase.
func (p *Printer) PhaseStarted(phase string, pending int) {
	p.println("")
	p.println(p.styles.phase.Render(strings.ToUpper(phase)) + p.styles.faint.Render(fmt.Sprintf("  %d pending", pending)))
}

// Item prints the outcome of one work unit.
func (p *Printer) Item(ev models.ItemEvent) {
	var status string
	switch ev.Status {
	case models.ItemCommitted:
		status = p.styles.committed.Render(string(ev.Status))
	case models.ItemRecovered:
		status = p.styles.recovered.Render(string(ev.Status))
	case models.ItemSkipped, models.ItemExhausted:
		status = p.styles.skipped.Render(string(ev.Status))
	default:
		status = p.styles.faint.Render(string(ev.Status))
	}

	line := fmt.Sprintf("  %-9s %s", status, ev.ItemID)
	if ev.Detail != "" {
		line += p.styles.faint.Render(" (" + ev.Detail + ")")
	}
	p.println(line)
}

// PhaseFinished prints the counters of a finished phase.
func (p *Printer) PhaseFinished(rep models.PhaseReport) {
	p.println(p.styles.faint.Render("  " + phaseCounters(rep)))
}

// Summary prints the final report of a run.
func (p *Printer) Summary(report models.SyncReport) {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s finished in %s\n", report.RunID, report.Duration().Round(1e6))
	for i, ph := range report.Phases {
		fmt.Fprintf(&b, "%-7s %s", ph.Phase, phaseCounters(ph))
		if i < len(report.Phases)-1 {
			b.WriteString("\n")
		}
	}
	p.println("")
	p.println(p.styles.summary.Render(b.String()))
}

// Error prints err prominently.
func (p *Printer) Error(err error) {
	p.println(p.styles.errorText.Render("error: " + err.Error()))
}

func (p *Printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, s)
}

func phaseCounters(rep models.PhaseReport) string {
	return fmt.Sprintf("pending %d, committed %d, recovered %d, skipped %d, exhausted %d, deferred %d",
		rep.Pending, rep.Committed, rep.Recovered, rep.Skipped, rep.Exhausted, rep.Deferred)
}
