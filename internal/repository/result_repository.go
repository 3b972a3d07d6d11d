package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/exam"
	"github.com/portfolio-site/backend/internal/metrics"
	"github.com/portfolio-site/backend/internal/model"
)

// ResultRepository keeps each exam's retained result history in Redis as a
// single JSON array and fans new results out over pub/sub.
type ResultRepository struct {
	rdb     redis.UniversalClient
	retries int
}

// NewResultRepository creates a new ResultRepository. retries bounds the
// optimistic attempts made by Append; values below 1 mean a single attempt.
func NewResultRepository(rdb redis.UniversalClient, retries int) *ResultRepository {
	if retries < 1 {
		retries = 1
	}
	return &ResultRepository{rdb: rdb, retries: retries}
}

func decodeHistory(raw string) ([]model.ExamResult, error) {
	var history []model.ExamResult
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("decode result history: %w", err)
	}
	return history, nil
}

// List returns the retained history for examID, newest first. A missing key is an empty history.
func (r *ResultRepository) List(ctx context.Context, examID string) ([]model.ExamResult, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.ExamResultsKey(examID)).Result()
	if errors.Is(err, redis.Nil) {
		return []model.ExamResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeHistory(raw)
}

// ListMany returns the histories of several exams in one round trip.
// Exams without results are absent from the map.
func (r *ResultRepository) ListMany(ctx context.Context, examIDs []string) (map[string][]model.ExamResult, error) {
	out := make(map[string][]model.ExamResult, len(examIDs))
	if len(examIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(examIDs))
	for i, id := range examIDs {
		keys[i] = config.CacheKey.ExamResultsKey(id)
	}

	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		history, err := decodeHistory(raw)
		if err != nil {
			return nil, err
		}
		out[examIDs[i]] = history
	}
	return out, nil
}

// Append records result as the newest entry of its exam's history and
// returns the history as stored. The read-modify-write runs under WATCH so
// concurrent submissions never overwrite each other; a lost race is retried.
func (r *ResultRepository) Append(ctx context.Context, result model.ExamResult) ([]model.ExamResult, error) {
	key := config.CacheKey.ExamResultsKey(result.ExamID)

	var stored []model.ExamResult
	txf := func(tx *redis.Tx) error {
		var current []model.ExamResult
		raw, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if current, err = decodeHistory(raw); err != nil {
				return err
			}
		}

		next := exam.RecordResult(current, result)
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode result history: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err == nil {
			stored = next
		}
		return err
	}

	for attempt := 0; attempt < r.retries; attempt++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		metrics.ResultAppendRetries.Inc()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, ErrContention
}

// Delete drops the history of examID.
func (r *ResultRepository) Delete(ctx context.Context, examID string) error {
	return r.rdb.Del(ctx, config.CacheKey.ExamResultsKey(examID)).Err()
}

// Publish announces a freshly stored result to live subscribers.
func (r *ResultRepository) Publish(ctx context.Context, result model.ExamResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, config.CacheKey.ExamResultsChannel(result.ExamID), payload).Err()
}

// Subscribe opens a subscription to new results of examID. The caller must close it.
func (r *ResultRepository) Subscribe(ctx context.Context, examID string) *redis.PubSub {
	return r.rdb.Subscribe(ctx, config.CacheKey.ExamResultsChannel(examID))
}
