package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/service"
)

type stubPosts struct {
	posts []model.Post
	err   error
}

func (s stubPosts) List(_ context.Context, includePrivate bool) ([]model.Post, error) {
	return s.posts, s.err
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t, twoQuestionExam("a", true), twoQuestionExam("b", false))
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, "a", []*int{intp(0), intp(2)})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, "a", []*int{nil, nil})
	require.NoError(t, err)

	posts := stubPosts{posts: []model.Post{{Slug: "p1", IsPublic: true}, {Slug: "p2"}}}
	dash := service.NewDashboardService(f.exams, f.results, posts)

	sum, err := dash.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, sum.TotalExams)
	require.Equal(t, 1, sum.PublicExams)
	require.Equal(t, 4, sum.TotalQuestions)
	require.Equal(t, 2, sum.TotalPosts)
	require.Equal(t, 1, sum.PublicPosts)
	require.Equal(t, 2, sum.StoredResults)
	require.InDelta(t, 0.5, sum.AverageRatio, 1e-9)
	require.Len(t, sum.RecentResults, 2)
	require.Equal(t, "Mock a", sum.RecentResults[0].ExamTitle)
	require.False(t, sum.RecentResults[0].SubmittedAt.Before(sum.RecentResults[1].SubmittedAt))
}

func TestDashboardSummaryPropagatesErrors(t *testing.T) {
	f := newFixture(t)
	dash := service.NewDashboardService(f.exams, f.results, stubPosts{err: errors.New("db down")})

	_, err := dash.Summary(context.Background())
	require.Error(t, err)
}
