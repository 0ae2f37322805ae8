package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/advent/internal/errors"
)

func TestShow_Opened(t *testing.T) {
	svc, _ := newTestService(t, "2025-12-10")
	ctx := context.Background()

	if _, err := svc.Open(ctx, OpenInput{Day: 7}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	out, err := svc.Show(ctx, ShowInput{Day: 7})
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if out.ID != 7 || !out.IsOpen {
		t.Errorf("Show(7) = %+v, want open day 7", out)
	}
	if out.Content == "" {
		t.Error("Content is empty for an opened day")
	}
}

func TestShow_NotOpened(t *testing.T) {
	svc, _ := newTestService(t, "2025-12-10")

	_, err := svc.Show(context.Background(), ShowInput{Day: 3})
	if !errors.Is(err, errors.ErrNotOpened) {
		t.Errorf("Show(3) = %v, want NOT_OPENED", err)
	}

	// Show never opens anything
	out, _ := svc.Progress(context.Background())
	if out.Opened != 0 {
		t.Errorf("Opened = %d after Show, want 0", out.Opened)
	}
}

func TestShow_NotFound(t *testing.T) {
	svc, _ := newTestService(t, "2025-12-10")

	for _, day := range []int{0, 26} {
		_, err := svc.Show(context.Background(), ShowInput{Day: day})
		if !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("Show(%d) = %v, want NOT_FOUND", day, err)
		}
	}
}
