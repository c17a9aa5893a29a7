package contracts

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 2, 14, 23, 30, 0, 0, time.UTC)
	b := time.Date(2025, 2, 18, 1, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 4 {
		t.Errorf("DaysBetween() = %d, want 4", got)
	}
	if got := DaysBetween(b, a); got != -4 {
		t.Errorf("DaysBetween() reversed = %d, want -4", got)
	}
}

func TestHorizonEnd(t *testing.T) {
	got := HorizonEnd(time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC))
	want := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("HorizonEnd() = %v, want %v", got, want)
	}
}

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		days int
		want WindowPhase
	}{
		{0, PhaseEarly},
		{29, PhaseEarly},
		{30, PhaseMid},
		{59, PhaseMid},
		{60, PhaseLate},
		{89, PhaseLate},
		{90, PhaseComplete},
	}

	for _, tt := range tests {
		if got := PhaseFor(tt.days); got != tt.want {
			t.Errorf("PhaseFor(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestJudgement_Display(t *testing.T) {
	realized := Judgement{Label: JudgementOnTrack, Basis: BasisRealized, Phase: PhaseEarly}
	if got := realized.Display(); got != "Early: On Track" {
		t.Errorf("Display() = %q", got)
	}

	projected := Judgement{Label: JudgementOnTrack, Basis: BasisProjected, Phase: PhaseMid}
	if got := projected.Display(); got != "On Track" {
		t.Errorf("Display() = %q", got)
	}

	final := Judgement{Label: JudgementHitTarget, Basis: BasisRealized, Phase: PhaseComplete}
	if got := final.Display(); got != "Hit Target" {
		t.Errorf("Display() = %q", got)
	}
}

func TestRecentDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC), // 정확히 100일 전
		time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
	}

	got := RecentDates(dates, now, DefaultRecentWindowDays)
	if len(got) != 2 {
		t.Fatalf("RecentDates() len = %d, want 2", len(got))
	}
	if !got[0].Equal(dates[1]) || !got[1].Equal(dates[2]) {
		t.Errorf("RecentDates() = %v, want newest first", got)
	}

	if all := RecentDates(dates, now, 0); len(all) != len(dates) {
		t.Errorf("RecentDates(window=0) len = %d, want %d", len(all), len(dates))
	}
}
