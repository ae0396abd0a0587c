package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/pipeline"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var outputFormats = []string{outputText, outputJSON}

type runOutput struct {
	Pipeline string `json:"pipeline"`
	Reduced  bool   `json:"reduced"`
	Result   any    `json:"result"`
}

func writeResult(w io.Writer, format, name string, res pipeline.Result[float64]) error {
	if format == outputJSON {
		return writeJSON(w, runOutput{Pipeline: name, Reduced: res.Reduced(), Result: res.Value()})
	}
	if res.Reduced() {
		_, err := fmt.Fprintln(w, formatValue(res.Value()))
		return err
	}
	parts := make([]string, len(res.Values()))
	for i, v := range res.Values() {
		parts[i] = formatNumber(v)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Internal(err).WithDetail("output", outputJSON)
	}
	return nil
}

// writeError prints err as the AppError JSON body or as a single text line.
func writeError(w io.Writer, format string, err error) {
	appErr := errors.From(err)
	if format == outputJSON {
		if e := writeJSON(w, appErr.ToResponse()); e == nil {
			return
		}
	}
	_, _ = fmt.Fprintf(w, "fnpipe: %s\n", appErr.Message)
	if appErr.Cause != nil {
		_, _ = fmt.Fprintf(w, "  cause: %v\n", appErr.Cause)
	}
	if stage, ok := appErr.Details["stage"]; ok {
		_, _ = fmt.Fprintf(w, "  stage: %v\n", stage)
	}
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return formatNumber(f)
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
