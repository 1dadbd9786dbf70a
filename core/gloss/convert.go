package gloss

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

// ConvertOptions controls dataset conversion into the fallback-map shape.
type ConvertOptions struct {
	// Format is one of "csv", "tsv", or "json".
	Format string
	// HasHeader indicates the first CSV/TSV row names the columns.
	HasHeader bool
	// NumField and GlossField name the columns (header mode) or JSON
	// object keys carrying the Strong's number and the gloss. When empty
	// they are auto-detected from common names.
	NumField   string
	GlossField string
}

// candidate field names for auto-detection, tried in order.
var (
	numCandidates   = []string{"strongs", "strongs_number", "number", "num", "id", "key"}
	glossCandidates = []string{"gloss", "definition", "meaning", "translation", "def"}
)

// ConvertDataset normalizes an open Strong's dataset into the JSON
// fallback-map shape: digit-only keys mapped to concise glosses. Supported
// inputs: CSV/TSV with two columns or a named header, a JSON mapping, or a
// JSON array of objects.
func ConvertDataset(r io.Reader, opts ConvertOptions) (map[string]string, error) {
	switch strings.ToLower(opts.Format) {
	case "csv":
		return convertDelimited(r, ',', opts)
	case "tsv":
		return convertDelimited(r, '\t', opts)
	case "json":
		return convertJSON(r, opts)
	default:
		return nil, &errors.ParseError{
			Format:  "lexicon dataset",
			Message: fmt.Sprintf("unsupported format %q (want csv, tsv, or json)", opts.Format),
		}
	}
}

func convertDelimited(r io.Reader, comma rune, opts ConvertOptions) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &errors.ParseError{Format: "lexicon dataset", Message: "malformed delimited input", Err: err}
	}
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	numIdx, glossIdx := 0, 1
	rows := records
	if opts.HasHeader {
		header := records[0]
		rows = records[1:]
		numIdx = findColumn(header, opts.NumField, numCandidates)
		glossIdx = findColumn(header, opts.GlossField, glossCandidates)
		if numIdx < 0 || glossIdx < 0 {
			return nil, &errors.ParseError{
				Format:  "lexicon dataset",
				Message: fmt.Sprintf("cannot locate number/gloss columns in header %v", header),
			}
		}
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) <= numIdx || len(row) <= glossIdx {
			continue
		}
		addEntry(out, row[numIdx], row[glossIdx])
	}
	return out, nil
}

func convertJSON(r io.Reader, opts ConvertOptions) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "lexicon dataset", Message: "cannot read input", Err: err}
	}

	// A plain mapping is already the target shape, modulo normalization.
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err == nil {
		out := make(map[string]string, len(mapping))
		for k, v := range mapping {
			addEntry(out, k, v)
		}
		return out, nil
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, &errors.ParseError{Format: "lexicon dataset", Message: "expected JSON mapping or array of objects", Err: err}
	}

	out := make(map[string]string, len(objects))
	for _, obj := range objects {
		num := pickField(obj, opts.NumField, numCandidates)
		gloss := pickField(obj, opts.GlossField, glossCandidates)
		if num == "" {
			continue
		}
		addEntry(out, num, gloss)
	}
	return out, nil
}

func addEntry(out map[string]string, num, gloss string) {
	key := NormalizeKey(num)
	val := NormalizeGloss(gloss)
	if key == "" || val == "" {
		return
	}
	out[key] = val
}

func findColumn(header []string, explicit string, candidates []string) int {
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, want := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}
	return -1
}

func pickField(obj map[string]any, explicit string, candidates []string) string {
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, want := range candidates {
		for k, v := range obj {
			if strings.EqualFold(k, want) {
				if s, ok := v.(string); ok {
					return s
				}
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return ""
}
