package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func WriteTable(r *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== QA Evaluation: %s ===\n\n", r.Suite)
	fmt.Fprintf(tw, "Hit@%d\tType accuracy\tErrors\tDuration\n", r.TopK)
	fmt.Fprintln(tw, "---\t---\t---\t---")
	fmt.Fprintf(tw, "%.4f\t%.4f\t%d/%d\t%s\n\n", r.HitAtK, r.TypeAccuracy, r.Errors, len(r.Cases), fmtDuration(r.Duration))

	s := r.Latency
	fmt.Fprintln(tw, "Min\tp50\tp90\tp95\tp99\tMax\tMean\tStddev\tSamples")
	fmt.Fprintln(tw, "---\t---\t---\t---\t---\t---\t---\t---\t---")
	fmt.Fprintln(tw, strings.Join([]string{
		fmtDuration(s.Min),
		fmtDuration(s.P50()),
		fmtDuration(s.P90()),
		fmtDuration(s.P95()),
		fmtDuration(s.P99()),
		fmtDuration(s.Max),
		fmtDuration(s.Mean),
		fmtDuration(s.Stddev),
		fmt.Sprintf("%d", s.SampleCount),
	}, "\t"))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Case\tType\tExpected\tHit rank\tLatency\tStatus")
	fmt.Fprintln(tw, "---\t---\t---\t---\t---\t---")
	for _, c := range r.Cases {
		status := "OK"
		if c.Error != "" {
			status = "ERR"
		}
		hit := "-"
		if c.HitRank >= 0 {
			hit = fmt.Sprintf("%d", c.HitRank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.QuestionType, c.ExpectedType, hit, fmtDuration(c.Latency), status)
	}

	return tw.Flush()
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
