package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	tm := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("IST", 2*3600))
	if got := DateKey(tm); got != "2026-03-14" {
		t.Errorf("DateKey %q, want 2026-03-14", got)
	}
}

func TestThemeIndexAndSeed_Deterministic(t *testing.T) {
	day := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)
	if ThemeIndex(day, "salt", 7) != ThemeIndex(later, "salt", 7) {
		t.Error("ThemeIndex differs within the same day")
	}
	if Seed(day, "salt") != Seed(later, "salt") {
		t.Error("Seed differs within the same day")
	}
	if Seed(day, "salt") == Seed(day, "pepper") {
		t.Error("Seed should depend on the salt")
	}
	if Seed(day, "salt") <= 0 {
		t.Error("Seed should be positive")
	}
	for i := 0; i < 30; i++ {
		d := day.AddDate(0, 0, i)
		if idx := ThemeIndex(d, "salt", 7); idx < 0 || idx >= 7 {
			t.Fatalf("ThemeIndex %d out of range", idx)
		}
	}
	if ThemeIndex(day, "salt", 0) != 0 {
		t.Error("ThemeIndex with n=0 should be 0")
	}
}
