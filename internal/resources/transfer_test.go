package resources_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/p-n-ai/ibcs-hub/internal/resources"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid", `[{"id":"1","title":"IB","url":"https://ibo.org"},{"id":"2","title":"CS50","url":"https://cs50.harvard.edu"}]`, 2, false},
		{"empty array", `[]`, 0, false},
		{"extra fields", `[{"id":"1","title":"IB","url":"https://ibo.org","notes":"keep"}]`, 1, false},
		{"object not array", `{"id":"1","title":"IB","url":"https://ibo.org"}`, 0, true},
		{"missing url", `[{"id":"1","title":"IB"}]`, 0, true},
		{"empty title", `[{"id":"1","title":"","url":"https://ibo.org"}]`, 0, true},
		{"numeric id", `[{"id":1,"title":"IB","url":"https://ibo.org"}]`, 0, true},
		{"not json", `id,title,url`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resources.ParseJSON(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, resources.ErrInvalidResource) {
					t.Errorf("ParseJSON() error = %v, want ErrInvalidResource", err)
				}
				return
			}
			if len(got) != tt.want {
				t.Errorf("ParseJSON() = %d resources, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := resources.NewMemoryStore()
	for _, title := range []string{"Visualgo", "Big-O"} {
		if _, err := src.Add(ctx, resources.Resource{Title: title, URL: "https://example.com/" + title}); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := resources.ExportJSON(ctx, src, &buf); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("ExportJSON() output is not indented:\n%s", buf.String())
	}

	list, err := resources.ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	dst := resources.NewMemoryStore()
	if err := resources.Import(ctx, dst, list); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want, _ := src.List(ctx)
	got, _ := dst.List(ctx)
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if !bytes.Equal(wantJSON, gotJSON) {
		t.Errorf("imported = %s, want %s", gotJSON, wantJSON)
	}
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := resources.NewMemoryStore()
	added, err := src.Add(ctx, resources.Resource{Title: "Python docs", URL: "https://docs.python.org"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := resources.ExportXLSX(ctx, src, &buf); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	list, err := resources.ParseXLSX(&buf)
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}
	if len(list) != 1 || list[0] != added {
		t.Errorf("ParseXLSX() = %+v, want [%+v]", list, added)
	}
}

func TestExport_Empty(t *testing.T) {
	ctx := context.Background()
	store := resources.NewMemoryStore()

	var buf bytes.Buffer
	if err := resources.ExportJSON(ctx, store, &buf); !errors.Is(err, resources.ErrNothingToExport) {
		t.Errorf("ExportJSON() error = %v, want ErrNothingToExport", err)
	}
	if err := resources.ExportXLSX(ctx, store, &buf); !errors.Is(err, resources.ErrNothingToExport) {
		t.Errorf("ExportXLSX() error = %v, want ErrNothingToExport", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an empty export", buf.Len())
	}
}

func TestImport_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := resources.NewMemoryStore()
	if _, err := store.Add(ctx, resources.Resource{Title: "Keep", URL: "https://keep"}); err != nil {
		t.Fatal(err)
	}

	err := resources.Import(ctx, store, []resources.Resource{{ID: "1", Title: "", URL: "https://x"}})
	if !errors.Is(err, resources.ErrInvalidResource) {
		t.Errorf("Import() error = %v, want ErrInvalidResource", err)
	}
	if list, _ := store.List(ctx); len(list) != 1 {
		t.Errorf("List() = %d items, want original list kept", len(list))
	}
}
