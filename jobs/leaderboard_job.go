package jobs

import (
	"context"
	"log"
	"time"

	"github.com/journeyapp/journey_backend/services"
)

// LeaderboardRefreshJob rebuilds the cached leaderboard so the public
// endpoint rarely has to hit Postgres.
type LeaderboardRefreshJob struct {
	Leaderboard *services.LeaderboardService
}

func NewLeaderboardRefreshJob(leaderboard *services.LeaderboardService) *LeaderboardRefreshJob {
	return &LeaderboardRefreshJob{Leaderboard: leaderboard}
}

func (j *LeaderboardRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := j.Leaderboard.Refresh(ctx); err != nil {
		log.Printf("🔥 Leaderboard refresh job failed: %v", err)
		return
	}
	log.Println("✅ Leaderboard cache refreshed")
}
