package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/coach-core-poc/server/internal/agent/model"
	errx "github.com/coach-core-poc/server/internal/core/error"
	logx "github.com/coach-core-poc/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisProfileRepository stores one hash per session. A missing hash reads
// back as an all-unset profile, so Get never fails for an unknown session.
type RedisProfileRepository struct {
	rdb redis.Cmdable
}

func NewRedisProfileRepository(rdb redis.Cmdable) *RedisProfileRepository {
	return &RedisProfileRepository{rdb: rdb}
}

func (r *RedisProfileRepository) profileKey(sessionID string) string {
	return fmt.Sprintf("profile:%s", sessionID)
}

func (r *RedisProfileRepository) Get(ctx context.Context, sessionID string) (model.Profile, error) {
	key := r.profileKey(sessionID)

	fields, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to load profile from redis")
		return model.Profile{}, errx.WrapRedis(err)
	}

	return model.Profile{
		SessionID:    sessionID,
		Gender:       fields[string(model.FieldGender)],
		Age:          fields[string(model.FieldAge)],
		FitnessLevel: fields[string(model.FieldFitnessLevel)],
		Goals:        fields[string(model.FieldGoals)],
	}, nil
}

func (r *RedisProfileRepository) Upsert(ctx context.Context, profile model.Profile) error {
	key := r.profileKey(profile.SessionID)

	values := map[string]any{
		string(model.FieldGender):       profile.Gender,
		string(model.FieldAge):          profile.Age,
		string(model.FieldFitnessLevel): profile.FitnessLevel,
		string(model.FieldGoals):        profile.Goals,
		"updated_at":                    time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.rdb.HSet(ctx, key, values).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to upsert profile to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ProfileRepository = (*RedisProfileRepository)(nil)
