package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	stepStyle = lipgloss.NewStyle().Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")) // green
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E")) // yellow
	ruleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")) // gray
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00B894"))
)

// Printer renders run progress and the final summary on standard output.
// Failure diagnostics never go through it; those belong on stderr.
type Printer struct {
	out io.Writer
}

// NewPrinter wraps the given writer, normally os.Stdout.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Banner announces the run target before the first step.
func (p *Printer) Banner(repo string) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, stepStyle.Render("Label standardization verification"))
	fmt.Fprintf(p.out, "Target repository: %s\n", repo)
	fmt.Fprintln(p.out, rule)
}

// Stepf prints the "k/n name..." progress line for a step.
func (p *Printer) Stepf(i, total int, name string) {
	fmt.Fprintf(p.out, "\n%s\n", stepStyle.Render(fmt.Sprintf("%d/%d %s...", i, total, name)))
}

// OK prints a green check mark line.
func (p *Printer) OK(format string, args ...any) {
	fmt.Fprintln(p.out, okStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a yellow, non-fatal warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, warnStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Summary prints the final success banner.
func (p *Printer) Summary(repo, branch string, issueNumber, prNumber, labelCount int) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Fprintf(p.out, "\n%s\n", rule)
	fmt.Fprintln(p.out, passStyle.Render("✅ All label standardization checks passed"))
	fmt.Fprintf(p.out, "Repository:      %s\n", repo)
	fmt.Fprintf(p.out, "Feature branch:  %s\n", branch)
	fmt.Fprintf(p.out, "Tracking issue:  #%d\n", issueNumber)
	fmt.Fprintf(p.out, "Tracking PR:     #%d\n", prNumber)
	fmt.Fprintf(p.out, "Expected labels: %d\n", labelCount)
	fmt.Fprintln(p.out, rule)
}
