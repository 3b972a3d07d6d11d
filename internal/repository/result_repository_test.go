package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/repository"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func result(examID string, sec int) model.ExamResult {
	return model.ExamResult{
		ExamID:         examID,
		SubmittedAt:    time.Unix(int64(sec), 0).UTC(),
		TotalQuestions: 1,
		UserAnswers:    []*int{nil},
	}
}

func TestResultRepositoryListEmpty(t *testing.T) {
	_, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 8)

	history, err := repo.List(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestResultRepositoryAppendKeepsTwoNewest(t *testing.T) {
	_, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 8)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := repo.Append(ctx, result("e1", i))
		require.NoError(t, err)
	}

	history, err := repo.List(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, []model.ExamResult{result("e1", 3), result("e1", 2)}, history)

	other, err := repo.List(ctx, "e2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestResultRepositoryConcurrentAppends(t *testing.T) {
	_, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 1000)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(sec int) {
			defer wg.Done()
			stored, err := repo.Append(ctx, result("e1", sec))
			if err == nil && !stored[0].SubmittedAt.Equal(time.Unix(int64(sec), 0)) {
				err = fmt.Errorf("append %d: newest stored result is %v", sec, stored[0].SubmittedAt)
			}
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	history, err := repo.List(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.NotEqual(t, history[0].SubmittedAt, history[1].SubmittedAt)
}

func TestResultRepositoryCorruptHistory(t *testing.T) {
	mr, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 8)
	ctx := context.Background()

	require.NoError(t, mr.Set(config.CacheKey.ExamResultsKey("e1"), "{not json"))

	_, err := repo.List(ctx, "e1")
	require.Error(t, err)

	_, err = repo.Append(ctx, result("e1", 1))
	require.Error(t, err)
}

func TestResultRepositoryListManyAndDelete(t *testing.T) {
	_, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 8)
	ctx := context.Background()

	_, err := repo.Append(ctx, result("a", 1))
	require.NoError(t, err)
	_, err = repo.Append(ctx, result("b", 2))
	require.NoError(t, err)

	all, err := repo.ListMany(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, []model.ExamResult{result("b", 2)}, all["b"])

	require.NoError(t, repo.Delete(ctx, "a"))
	history, err := repo.List(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestResultRepositoryPublish(t *testing.T) {
	_, rdb := newRedis(t)
	repo := repository.NewResultRepository(rdb, 8)
	ctx := context.Background()

	sub := repo.Subscribe(ctx, "e1")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Publish(ctx, result("e1", 7)))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, config.CacheKey.ExamResultsChannel("e1"), msg.Channel)
	require.Contains(t, msg.Payload, `"exam_id":"e1"`)
}

func TestSessionRepository(t *testing.T) {
	mr, rdb := newRedis(t)
	repo := repository.NewSessionRepository(rdb)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "jti-1", "admin@example.com", time.Hour))

	ok, err := repo.Exists(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Hour)
	ok, err = repo.Exists(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Create(ctx, "jti-2", "admin@example.com", time.Hour))
	require.NoError(t, repo.Delete(ctx, "jti-2"))
	ok, err = repo.Exists(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, ok)
}
