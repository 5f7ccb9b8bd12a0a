package results

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable renders a human-readable match table followed by the
// per-pattern summary.
func WriteTable(w io.Writer, result *ScanResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	if len(result.Lines) == len(result.Matches) && len(result.Lines) > 0 {
		fmt.Fprintln(tw, "LINE\tSTART\tEND\tPATTERN")
		for i, m := range result.Matches {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", result.Lines[i], m.Start, m.End, m.Pattern)
		}
	} else {
		fmt.Fprintln(tw, "START\tEND\tPATTERN")
		for _, m := range result.Matches {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", m.Start, m.End, m.Pattern)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d match(es) in %s (%s, %v)\n",
		result.Summary.TotalMatches, result.Input, result.Mode, result.Summary.Duration.Round(timeRounding))
	for _, pc := range result.Summary.PerPattern {
		fmt.Fprintf(w, "  %-30q %d\n", pc.Pattern, pc.Count)
	}
	return nil
}

const timeRounding = 1000 // nanoseconds; keep durations readable
