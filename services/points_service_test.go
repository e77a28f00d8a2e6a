package services

import (
	"testing"

	"github.com/journeyapp/journey_backend/models"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}
	for _, c := range cases {
		if got := LevelForPoints(c.points); got != c.level {
			t.Errorf("LevelForPoints(%d) = %d, want %d", c.points, got, c.level)
		}
	}
}

func TestAddPointsAccumulatesAndLevels(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	user := createTestUser(t, db, "alice")

	deltas := []int{5, 25, 80, 10}
	total := 0
	for _, d := range deltas {
		updated, err := points.AddPoints(user.ID, d, "verse_read", "")
		if err != nil {
			t.Fatalf("AddPoints(%d) failed: %v", d, err)
		}
		total += d
		if updated.Points != total {
			t.Fatalf("after +%d: points = %d, want %d", d, updated.Points, total)
		}
		if updated.Level != LevelForPoints(total) {
			t.Fatalf("after +%d: level = %d, want %d", d, updated.Level, LevelForPoints(total))
		}
	}

	if got := countTransactions(t, db, user.ID, ""); got != int64(len(deltas)) {
		t.Fatalf("ledger rows = %d, want %d", got, len(deltas))
	}
}

func TestAddPointsClampsAtZero(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	user := createTestUser(t, db, "bob")

	if _, err := points.AddPoints(user.ID, 30, "verse_read", ""); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	updated, err := points.AddPoints(user.ID, -100, "adjustment", "")
	if err != nil {
		t.Fatalf("AddPoints with negative delta failed: %v", err)
	}

	if updated.Points != 0 {
		t.Fatalf("points = %d, want 0 (clamped)", updated.Points)
	}
	if updated.Level != 1 {
		t.Fatalf("level = %d, want 1", updated.Level)
	}
}

func TestAddPointsWritesLedgerBalance(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	user := createTestUser(t, db, "carol")

	if _, err := points.AddPoints(user.ID, 40, "verse_read", "john-3-16"); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	if _, err := points.AddPoints(user.ID, 60, "chapter_completed", "john-3"); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}

	var entries []models.PointsTransaction
	if err := db.Where("user_id = ?", user.ID).Order("created_at asc, balance asc").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ledger rows = %d, want 2", len(entries))
	}
	if entries[0].Balance != 40 || entries[1].Balance != 100 {
		t.Fatalf("balances = %d, %d; want 40, 100", entries[0].Balance, entries[1].Balance)
	}
	if entries[0].Reference != "john-3-16" {
		t.Fatalf("reference = %q, want %q", entries[0].Reference, "john-3-16")
	}
}
