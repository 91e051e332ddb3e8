package cache

import (
	"context"
	"fmt"
	"strconv"

	redisv9 "github.com/redis/go-redis/v9"
)

// HotNewsBoard keeps an engagement leaderboard in a Redis sorted set.
// Scores are view events recorded by the worker; MySQL remains the
// system of record for the per-article counter.
type HotNewsBoard struct {
	client     *redisv9.Client
	key        string
	maxEntries int
}

func NewHotNewsBoard(client *redisv9.Client, key string, maxEntries int) *HotNewsBoard {
	if key == "" {
		key = "news:hot"
	}
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &HotNewsBoard{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
	}
}

// RecordView bumps the article's score and trims the set so it never
// grows past maxEntries.
func (b *HotNewsBoard) RecordView(ctx context.Context, newsID uint) error {
	member := strconv.FormatUint(uint64(newsID), 10)
	if err := b.client.ZIncrBy(ctx, b.key, 1, member).Err(); err != nil {
		return fmt.Errorf("redis bump hot score failed: %w", err)
	}
	if err := b.client.ZRemRangeByRank(ctx, b.key, 0, int64(-b.maxEntries-1)).Err(); err != nil {
		return fmt.Errorf("redis trim hot board failed: %w", err)
	}
	return nil
}

// TopNewsIDs returns up to limit article ids, highest score first.
func (b *HotNewsBoard) TopNewsIDs(ctx context.Context, limit int) ([]uint, error) {
	if limit <= 0 || limit > b.maxEntries {
		limit = b.maxEntries
	}
	members, err := b.client.ZRevRange(ctx, b.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read hot board failed: %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, member := range members {
		id, parseErr := strconv.ParseUint(member, 10, 64)
		if parseErr != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
