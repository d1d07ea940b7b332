package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AtulFalle/pictionary/internal/entity"
)

// ScoreRepository keeps the per-player feed of score awards. Room state lives
// in memory only; this history is the sole thing worth keeping around after
// a game ends.
type ScoreRepository interface {
	RecordAward(ctx context.Context, award *entity.ScoreAward) error
	ListByPlayer(ctx context.Context, playerID string) ([]*entity.ScoreAward, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func (that *dbScore) RecordAward(ctx context.Context, award *entity.ScoreAward) error {
	awardJSON, err := json.Marshal(award)
	if err != nil {
		return fmt.Errorf("failed to marshal score award: %w", err)
	}

	scoreKey := "scores:" + award.PlayerID
	if err = that.client.RPush(ctx, scoreKey, awardJSON).Err(); err != nil {
		return fmt.Errorf("failed to push score award: %w", err)
	}

	return nil
}

func (that *dbScore) ListByPlayer(ctx context.Context, playerID string) ([]*entity.ScoreAward, error) {
	scoreKey := "scores:" + playerID

	entries, err := that.client.LRange(ctx, scoreKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list score awards: %w", err)
	}

	awards := make([]*entity.ScoreAward, 0, len(entries))
	for _, entry := range entries {
		var award entity.ScoreAward
		if err = json.Unmarshal([]byte(entry), &award); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score award: %w", err)
		}
		awards = append(awards, &award)
	}

	return awards, nil
}
