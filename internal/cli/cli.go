package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"navitunes/internal/model"
)

// IsTerminal reports whether w writes to an interactive terminal.
// Table rendering and progress decorations are dropped when it does not.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes progress events and run summaries for the command-line
// tools.
type Printer struct {
	out     io.Writer
	verbose bool
	pretty  bool
}

// NewPrinter creates a Printer writing to out. Verbose-level events are
// dropped unless verbose is set; table styling applies only when out is
// a terminal.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose, pretty: IsTerminal(out)}
}

// Event writes one progress event as a prefixed line.
func (p *Printer) Event(e model.ProgressEvent) {
	if e.Level == model.LevelVerbose && !p.verbose {
		return
	}

	prefix := "›"
	switch e.Level {
	case model.LevelError:
		prefix = "✗"
	case model.LevelWarning:
		prefix = "!"
	case model.LevelSuccess:
		prefix = "✓"
	}
	fmt.Fprintf(p.out, "%s %s\n", prefix, e.Message)
}

// Summary renders the per-file results of a run. On a terminal it draws
// a rounded table with a right-aligned track column; elsewhere it falls
// back to plain tab-separated lines so piped output stays parseable.
func (p *Printer) Summary(summary model.RunSummary) {
	if len(summary.Results) == 0 {
		fmt.Fprintln(p.out, "Nothing to do.")
		return
	}

	if !p.pretty {
		for _, r := range summary.Results {
			status := "ok"
			if r.Err != nil {
				status = "failed: " + r.Err.Error()
			}
			fmt.Fprintf(p.out, "%s\t%d/%d\t%s\n", r.Name, r.Resolved, r.Total, status)
		}
		fmt.Fprintf(p.out, "%d succeeded, %d failed\n", summary.Succeeded(), summary.Failed())
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Tracks", "Status"})
	for _, r := range summary.Results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		tracks := strconv.Itoa(r.Resolved)
		if r.Total != r.Resolved {
			tracks = fmt.Sprintf("%d/%d", r.Resolved, r.Total)
		}
		tw.AppendRow(table.Row{r.Name, tracks, status})
	}
	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d ok, %d failed", summary.Succeeded(), summary.Failed())})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(p.out, tw.Render())
}
