package uptime

import (
	"context"
	"errors"
	"testing"

	"hostdash/internal/domain"
	"hostdash/internal/logger"
)

func TestCollect(t *testing.T) {
	c := &Collector{
		log:    logger.Nop(),
		uptime: func(context.Context) (uint64, error) { return 90061, nil },
	}

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := domain.Uptime{Days: 1, Hours: 1, Minutes: 1, Seconds: 90061}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCollectError(t *testing.T) {
	c := &Collector{
		log:    logger.Nop(),
		uptime: func(context.Context) (uint64, error) { return 0, errors.New("boom") },
	}

	got, err := c.Collect(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got != (domain.Uptime{}) {
		t.Fatalf("got %+v, want zero value", got)
	}
}
