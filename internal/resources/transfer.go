package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/ibcs-hub/internal/platform/xlsx"
)

// importSchema accepts the JSON produced by ExportJSON.
var importSchema = gojsonschema.NewStringLoader(`{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id":    {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "url":   {"type": "string", "minLength": 1}
    },
    "required": ["id", "title", "url"]
  }
}`)

const maxImportBytes = 1 << 20

// ParseJSON decodes an exported resource list. The document must be an array
// whose items all carry a non-empty id, title and url.
func ParseJSON(r io.Reader) ([]Resource, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading import: %v", ErrInvalidResource, err)
	}
	if len(data) > maxImportBytes {
		return nil, fmt.Errorf("%w: import larger than %d bytes", ErrInvalidResource, maxImportBytes)
	}

	result, err := gojsonschema.Validate(importSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResource, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidResource, strings.Join(msgs, "; "))
	}

	var list []Resource
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResource, err)
	}
	return list, nil
}

// ParseXLSX reads resources from the first sheet of a workbook laid out as
// ExportXLSX writes it. A leading header row is skipped.
func ParseXLSX(r io.Reader) ([]Resource, error) {
	rows, err := xlsx.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResource, err)
	}

	var list []Resource
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(row[0], "id") {
			continue
		}
		if len(row) == 0 {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: row %d needs id, title and url", ErrInvalidResource, i+1)
		}
		list = append(list, Resource{
			ID:    strings.TrimSpace(row[0]),
			Title: strings.TrimSpace(row[1]),
			URL:   strings.TrimSpace(row[2]),
		})
	}
	return list, nil
}

// Import replaces the store contents with list.
func Import(ctx context.Context, s Store, list []Resource) error {
	if err := s.Replace(ctx, list); err != nil {
		return fmt.Errorf("import resources: %w", err)
	}
	return nil
}

// ExportJSON writes the store contents as an indented JSON array.
func ExportJSON(ctx context.Context, s Store, w io.Writer) error {
	list, err := exportList(ctx, s)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encoding resources: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportXLSX writes the store contents as a workbook.
func ExportXLSX(ctx context.Context, s Store, w io.Writer) error {
	list, err := exportList(ctx, s)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		rows = append(rows, []any{r.ID, r.Title, r.URL})
	}
	return xlsx.Write(w, xlsx.Table{
		Sheet:  "Resources",
		Header: []string{"ID", "Title", "URL"},
		Rows:   rows,
		Widths: []float64{38, 40, 60},
	})
}

func exportList(ctx context.Context, s Store) ([]Resource, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNothingToExport
	}
	return list, nil
}
