package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Output names a report format.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputCSV  Output = "csv"
)

// ParseOutput validates a report format name.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case OutputText, OutputJSON, OutputCSV:
		return o, nil
	}
	return "", fmt.Errorf("unknown output format %q: want text, json or csv", s)
}

// Write renders results in the given format.
func Write(w io.Writer, results []Result, out Output) error {
	switch out {
	case OutputJSON:
		return WriteJSON(w, results)
	case OutputCSV:
		return WriteCSV(w, results)
	default:
		return WriteText(w, results)
	}
}

// WriteText prints one block per job.
func WriteText(w io.Writer, results []Result) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		var err error
		if r.OK() {
			o := r.Outcome
			_, err = fmt.Fprintf(w, "%s: %s\n  params: %s\n  error:  %s\n  result: %s\n",
				r.Name, o.Formula, strings.Join(o.Params, ", "), o.ErrorExpression, o.Result)
			if err == nil && o.Value != nil {
				_, err = fmt.Fprintf(w, "  value:  %s\n", strconv.FormatFloat(*o.Value, 'g', 15, 64))
			}
		} else {
			_, err = fmt.Fprintf(w, "%s: FAILED [%s] %s\n", r.Name, r.Kind, r.Error)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints the results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	data, err := sonic.ConfigStd.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV prints one row per job.
func WriteCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "formula", "result", "uncertainty", "value", "kind", "error"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{r.Name, "", "", "", "", r.Kind, r.Error}
		if r.OK() {
			row[1] = r.Outcome.Formula
			row[2] = r.Outcome.Result
			row[3] = optionalFloat(r.Outcome.Uncertainty)
			row[4] = optionalFloat(r.Outcome.Value)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
