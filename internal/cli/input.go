package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/kbukum/fnkit/errors"
)

// parseValues converts command-line arguments to numbers. Each argument
// may itself hold several comma-separated values.
func parseValues(args []string) ([]float64, error) {
	return parseFields(strings.Join(args, " "))
}

// readValues reads numbers from r: a JSON array, or values separated by
// whitespace or commas.
func readValues(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Internal(err)
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []float64
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, errors.InvalidInput("values", fmt.Sprintf("invalid JSON array: %v", err)).WithCause(err)
		}
		if values == nil {
			values = []float64{}
		}
		return values, nil
	}
	return parseFields(string(data))
}

func parseFields(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	values := make([]float64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.InvalidInput("values", fmt.Sprintf("value %d (%q) is not a number", i+1, f)).WithCause(err)
		}
		values = append(values, v)
	}
	return values, nil
}
