package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/shaiso/Annotata/internal/domain"
)

func TestNextDue_Cron(t *testing.T) {
	trigger := &domain.Trigger{CronExpr: "0 3 * * *"}
	from := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	next, err := NextDue(trigger, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestNextDue_CronWithTimezone(t *testing.T) {
	trigger := &domain.Trigger{CronExpr: "0 3 * * *", Timezone: "Europe/Moscow"}
	from := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	next, err := NextDue(trigger, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 03:00 по Москве (UTC+3) — это 00:00 UTC.
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestNextDue_Interval(t *testing.T) {
	trigger := &domain.Trigger{IntervalSec: 600}
	from := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	next, err := NextDue(trigger, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(from.Add(10 * time.Minute)) {
		t.Fatalf("next = %v", next)
	}
}

func TestNextDue_BadTimezoneFallsBackToUTC(t *testing.T) {
	trigger := &domain.Trigger{IntervalSec: 60, Timezone: "Mars/Olympus"}
	from := time.Now()
	if _, err := NextDue(trigger, from); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNextDue_NoSchedule(t *testing.T) {
	if _, err := NextDue(&domain.Trigger{}, time.Now()); !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule, got %v", err)
	}
}

func TestValidateCronExpr(t *testing.T) {
	if err := ValidateCronExpr("*/5 * * * *"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := ValidateCronExpr("not a cron"); err == nil {
		t.Error("invalid expression accepted")
	}
}
