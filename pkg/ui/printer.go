package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/systemstart/checkrun/pkg/runner"
)

const bannerWidth = 60

// Printer renders step banners and the final summary. Tool output itself is
// never routed through the Printer; it goes straight to the runner's writers.
type Printer struct {
	out io.Writer

	banner lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	dim    lipgloss.Style
}

// NewPrinter creates a Printer writing to out. Styling is disabled when
// noColor is set or out is not a terminal.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{out: out}

	if noColor || !isTerminal(out) {
		plain := lipgloss.NewStyle()
		p.banner, p.pass, p.fail, p.dim = plain, plain, plain, plain
		return p
	}

	p.banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	p.pass = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	p.fail = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	p.dim = lipgloss.NewStyle().Faint(true)
	return p
}

// StepStarted prints the progress banner for a step about to run.
func (p *Printer) StepStarted(step runner.Step) {
	label := fmt.Sprintf("── %s ", step.Name)
	rule := strings.Repeat("─", max(0, bannerWidth-lipgloss.Width(label)))
	fmt.Fprintln(p.out, p.banner.Render(label+rule))
}

// StepFinished prints a one-line verdict for a completed step.
func (p *Printer) StepFinished(result runner.RunResult) {
	if result.Succeeded() {
		fmt.Fprintf(p.out, "%s %s %s\n",
			p.pass.Render("✓"), result.StepName, p.dim.Render(result.Duration.Round(time.Millisecond).String()))
		return
	}
	fmt.Fprintf(p.out, "%s %s %s\n",
		p.fail.Render("✗"), result.StepName, p.fail.Render(fmt.Sprintf("(exit %d)", result.ExitCode)))
}

// Summary prints one line per step and an overall verdict.
func (p *Printer) Summary(results []runner.RunResult) {
	var failed int
	for _, result := range results {
		if !result.Succeeded() {
			failed++
		}
	}

	fmt.Fprintln(p.out, p.dim.Render(strings.Repeat("─", bannerWidth)))
	for _, result := range results {
		p.StepFinished(result)
	}

	if failed == 0 {
		fmt.Fprintln(p.out, p.pass.Render("all steps passed"))
		return
	}
	fmt.Fprintln(p.out, p.fail.Render(fmt.Sprintf("%d step(s) failed", failed)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
