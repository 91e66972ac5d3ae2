package resources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/p-n-ai/ibcs-hub/internal/resources"
)

func TestMemoryStore_AddListDelete(t *testing.T) {
	testStore(t, resources.NewMemoryStore())
}

func TestMemoryStore_ListIsCopy(t *testing.T) {
	ctx := context.Background()
	store := resources.NewMemoryStore()
	if _, err := store.Add(ctx, resources.Resource{Title: "Visualgo", URL: "https://visualgo.net"}); err != nil {
		t.Fatal(err)
	}

	list, _ := store.List(ctx)
	list[0].Title = "changed"

	again, _ := store.List(ctx)
	if again[0].Title != "Visualgo" {
		t.Errorf("List() shares backing array with store")
	}
}

// testStore exercises the Store contract against any implementation.
func testStore(t *testing.T, store resources.Store) {
	t.Helper()
	ctx := context.Background()

	invalid := []resources.Resource{
		{Title: "", URL: "https://example.com"},
		{Title: "No link", URL: "   "},
	}
	for _, r := range invalid {
		if _, err := store.Add(ctx, r); !errors.Is(err, resources.ErrInvalidResource) {
			t.Errorf("Add(%+v) error = %v, want ErrInvalidResource", r, err)
		}
	}

	first, err := store.Add(ctx, resources.Resource{Title: "  IB guide ", URL: "https://ibo.org/guide"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if first.ID == "" || first.Title != "IB guide" {
		t.Errorf("Add() = %+v, want trimmed title and new id", first)
	}
	second, err := store.Add(ctx, resources.Resource{ID: "ignored", Title: "Big-O", URL: "https://bigocheatsheet.com"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if second.ID == "ignored" || second.ID == first.ID {
		t.Errorf("Add() id = %q, want a fresh id", second.ID)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("List() = %+v, want insertion order", list)
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, first.ID); !errors.Is(err, resources.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}

	replacement := []resources.Resource{
		{ID: "b", Title: "Second", URL: "https://b.example"},
		{ID: "a", Title: "First", URL: "https://a.example"},
	}
	if err := store.Replace(ctx, replacement); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("List() after Replace = %+v, want [b a]", list)
	}

	dup := []resources.Resource{
		{ID: "x", Title: "One", URL: "https://one"},
		{ID: "x", Title: "Two", URL: "https://two"},
	}
	if err := store.Replace(ctx, dup); !errors.Is(err, resources.ErrInvalidResource) {
		t.Errorf("Replace(duplicates) error = %v, want ErrInvalidResource", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 2 {
		t.Errorf("List() after rejected Replace = %d items, want 2 unchanged", len(list))
	}

	if err := store.Replace(ctx, nil); err != nil {
		t.Fatalf("Replace(nil) error = %v", err)
	}
	if list, _ = store.List(ctx); len(list) != 0 {
		t.Errorf("List() after clearing = %+v, want empty", list)
	}
}
