// Package leaderboard keeps an experience ranking of players in a Redis
// sorted set, fed from post-commit progression events.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// Entry is one ranked player
type Entry struct {
	Rank       int64  `json:"rank"`
	PlayerID   int64  `json:"player_id"`
	Username   string `json:"username"`
	Experience int64  `json:"experience"`
}

// Board defines the leaderboard operations
type Board interface {
	Update(ctx context.Context, playerID int64, username string, experience int64) error
	Top(ctx context.Context, limit int) ([]Entry, error)
	Rank(ctx context.Context, playerID int64) (*Entry, error)
}

// RedisBoard implements Board on a sorted set plus a username hash
type RedisBoard struct {
	client redis.UniversalClient
}

// Options configures the redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens and pings a redis client
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgConnected, "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// NewRedisBoard creates a board on client
func NewRedisBoard(client redis.UniversalClient) *RedisBoard {
	return &RedisBoard{client: client}
}

// Update sets a player's absolute experience score
func (b *RedisBoard) Update(ctx context.Context, playerID int64, username string, experience int64) error {
	member := strconv.FormatInt(playerID, 10)
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, ExperienceKey, redis.Z{Score: float64(experience), Member: member})
		if username != "" {
			pipe.HSet(ctx, UsernamesKey, member, username)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting score: %w", err)
	}
	return nil
}

// Top returns the highest ranked players. limit must be within 1..MaxLimit.
func (b *RedisBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxLimit)
	}

	results, err := b.client.ZRevRangeWithScores(ctx, ExperienceKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top players: %w", err)
	}
	if len(results) == 0 {
		return []Entry{}, nil
	}

	members := make([]string, len(results))
	for i, z := range results {
		members[i], _ = z.Member.(string)
	}
	names, err := b.client.HMGet(ctx, UsernamesKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("getting usernames: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		id, err := strconv.ParseInt(members[i], 10, 64)
		if err != nil {
			continue
		}
		name, _ := names[i].(string)
		entries = append(entries, Entry{
			Rank:       int64(i + 1),
			PlayerID:   id,
			Username:   name,
			Experience: int64(z.Score),
		})
	}
	return entries, nil
}

// Rank returns one player's 1-based position. A player not on the board
// yields domain.ErrPlayerNotFound.
func (b *RedisBoard) Rank(ctx context.Context, playerID int64) (*Entry, error) {
	member := strconv.FormatInt(playerID, 10)

	pipe := b.client.Pipeline()
	rankCmd := pipe.ZRevRank(ctx, ExperienceKey, member)
	scoreCmd := pipe.ZScore(ctx, ExperienceKey, member)
	nameCmd := pipe.HGet(ctx, UsernamesKey, member)
	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("getting player rank: %w", err)
	}

	rank, err := rankCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting rank result: %w", err)
	}
	score, err := scoreCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("getting score result: %w", err)
	}

	return &Entry{
		Rank:       rank + 1,
		PlayerID:   playerID,
		Username:   nameCmd.Val(),
		Experience: int64(score),
	}, nil
}
