package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/0", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	ctx := t.Context()
	_, err := New(ctx, "redis://localhost:59999")
	if err == nil {
		t.Fatal("New() should return error for unreachable host")
	}
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.SetClock(func() time.Time { return now })

	if _, err := m.Get(ctx, "quiz"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() on empty cache error = %v, want ErrMiss", err)
	}

	value := []byte(`{"questions":[]}`)
	if err := m.Set(ctx, "quiz", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'x'

	got, err := m.Get(ctx, "quiz")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"questions":[]}` {
		t.Errorf("Get() = %s, want stored copy", got)
	}

	now = now.Add(time.Minute)
	if _, err := m.Get(ctx, "quiz"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get() after TTL error = %v, want ErrMiss", err)
	}
}

func TestMemory_NoExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	m.SetClock(func() time.Time { return now })

	_ = m.Set(ctx, "k", []byte("v"), 0)
	now = now.Add(365 * 24 * time.Hour)
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Errorf("Get() error = %v, want entry without expiry", err)
	}
}

var (
	_ Store = (*Cache)(nil)
	_ Store = (*Memory)(nil)
)
