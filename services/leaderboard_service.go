package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

const (
	leaderboardCacheKey = "journey:leaderboard:top"
	leaderboardCacheTTL = 5 * time.Minute
	leaderboardSize     = 10
)

type LeaderboardEntry struct {
	Username  string  `json:"username"`
	Points    int     `json:"points"`
	Level     int     `json:"level"`
	Streak    int     `json:"streak"`
	AvatarURL *string `json:"avatar_url"`
}

// LeaderboardService serves the top users by points, with a short-TTL Redis
// cache in front of the database. Redis being down or absent only costs the
// cache: every path falls back to the database query.
type LeaderboardService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, rdb: rdb}
}

func (s *LeaderboardService) GetTop(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.queryTop()
	if err != nil {
		return nil, err
	}
	s.prime(ctx, entries)
	return entries, nil
}

// Refresh re-primes the cache; run from cron.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	entries, err := s.queryTop()
	if err != nil {
		return err
	}
	s.prime(ctx, entries)
	return nil
}

func (s *LeaderboardService) queryTop() ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.Model(&models.User{}).
		Select("username", "points", "level", "streak", "avatar_url").
		Where("status = ?", "active").
		Order("points desc").
		Limit(leaderboardSize).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *LeaderboardService) prime(ctx context.Context, entries []LeaderboardEntry) {
	if s.rdb == nil {
		return
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, leaderboardCacheKey, encoded, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("Warning: failed to prime leaderboard cache: %v", err)
	}
}
