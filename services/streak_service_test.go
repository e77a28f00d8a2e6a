package services

import (
	"testing"
	"time"

	"github.com/journeyapp/journey_backend/models"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 10, 30, 0, 0, time.UTC)
}

func TestStreakFirstActivity(t *testing.T) {
	db := openTestDB(t)
	streaks := NewStreakService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "dan")

	res, err := streaks.updateAt(user.ID, day(1))
	if err != nil {
		t.Fatalf("updateAt failed: %v", err)
	}
	if !res.Updated || res.Streak != 1 || res.LongestStreak != 1 {
		t.Fatalf("got %+v, want updated streak 1", res)
	}
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	db := openTestDB(t)
	streaks := NewStreakService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "erin")

	if _, err := streaks.updateAt(user.ID, day(1)); err != nil {
		t.Fatalf("first updateAt failed: %v", err)
	}
	res, err := streaks.updateAt(user.ID, day(1).Add(8*time.Hour))
	if err != nil {
		t.Fatalf("second updateAt failed: %v", err)
	}
	if res.Updated {
		t.Fatalf("same-day update reported Updated = true")
	}
	if res.Streak != 1 {
		t.Fatalf("streak = %d, want 1", res.Streak)
	}
}

func TestStreakConsecutiveDaysExtend(t *testing.T) {
	db := openTestDB(t)
	streaks := NewStreakService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "fay")

	for d := 1; d <= 5; d++ {
		res, err := streaks.updateAt(user.ID, day(d))
		if err != nil {
			t.Fatalf("day %d: updateAt failed: %v", d, err)
		}
		if res.Streak != d {
			t.Fatalf("day %d: streak = %d, want %d", d, res.Streak, d)
		}
	}
}

func TestStreakGapResetsButKeepsLongest(t *testing.T) {
	db := openTestDB(t)
	streaks := NewStreakService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "gus")

	for d := 1; d <= 4; d++ {
		if _, err := streaks.updateAt(user.ID, day(d)); err != nil {
			t.Fatalf("day %d: updateAt failed: %v", d, err)
		}
	}

	// Two missed days.
	res, err := streaks.updateAt(user.ID, day(7))
	if err != nil {
		t.Fatalf("updateAt after gap failed: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak after gap = %d, want 1", res.Streak)
	}
	if res.LongestStreak != 4 {
		t.Fatalf("longest streak = %d, want 4", res.LongestStreak)
	}

	fresh := reloadUser(t, db, user.ID)
	if fresh.LongestStreak != 4 {
		t.Fatalf("persisted longest streak = %d, want 4", fresh.LongestStreak)
	}
}

func TestStreakMilestonePaysOnce(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	streaks := NewStreakService(db, points, nil)
	user := createTestUser(t, db, "hal")

	var bonusTotal int
	for d := 1; d <= 3; d++ {
		res, err := streaks.updateAt(user.ID, day(d))
		if err != nil {
			t.Fatalf("day %d: updateAt failed: %v", d, err)
		}
		bonusTotal += res.MilestoneBonus
	}
	if bonusTotal != 10 {
		t.Fatalf("milestone bonus total = %d, want 10", bonusTotal)
	}

	fresh := reloadUser(t, db, user.ID)
	if fresh.Points != 10 {
		t.Fatalf("points = %d, want 10", fresh.Points)
	}

	// Lose the streak, rebuild to three days: the milestone row already
	// exists, so no second payout.
	for d := 5; d <= 7; d++ {
		res, err := streaks.updateAt(user.ID, day(d))
		if err != nil {
			t.Fatalf("rebuild day %d: updateAt failed: %v", d, err)
		}
		if res.MilestoneBonus != 0 {
			t.Fatalf("rebuild day %d: milestone bonus = %d, want 0", d, res.MilestoneBonus)
		}
	}

	if got := countTransactions(t, db, user.ID, "streak_milestone"); got != 1 {
		t.Fatalf("streak_milestone ledger rows = %d, want 1", got)
	}
}

func TestStreakRecordsActivityDays(t *testing.T) {
	db := openTestDB(t)
	streaks := NewStreakService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "ivy")

	for d := 1; d <= 3; d++ {
		if _, err := streaks.updateAt(user.ID, day(d)); err != nil {
			t.Fatalf("day %d: updateAt failed: %v", d, err)
		}
	}
	// Same day twice must not produce a second calendar row.
	if _, err := streaks.updateAt(user.ID, day(3).Add(time.Hour)); err != nil {
		t.Fatalf("repeat updateAt failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.StreakActivity{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count streak activities: %v", err)
	}
	if count != 3 {
		t.Fatalf("streak activity rows = %d, want 3", count)
	}
}
