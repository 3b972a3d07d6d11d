package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/portfolio-site/backend/internal/model"
)

const recentResultsLimit = 10

// PostLister lists blog posts.
type PostLister interface {
	List(ctx context.Context, includePrivate bool) ([]model.Post, error)
}

// RecentResult is a stored result annotated with its exam title.
type RecentResult struct {
	ExamTitle string `json:"exam_title"`
	model.ExamResult
}

// DashboardSummary is the admin landing page payload.
type DashboardSummary struct {
	TotalExams     int            `json:"total_exams"`
	PublicExams    int            `json:"public_exams"`
	TotalQuestions int            `json:"total_questions"`
	TotalPosts     int            `json:"total_posts"`
	PublicPosts    int            `json:"public_posts"`
	StoredResults  int            `json:"stored_results"`
	AverageRatio   float64        `json:"average_score_ratio"`
	RecentResults  []RecentResult `json:"recent_results"`
}

// DashboardService aggregates exams, posts and retained results.
type DashboardService struct {
	exams   ExamStore
	results ResultStore
	posts   PostLister
}

func NewDashboardService(exams ExamStore, results ResultStore, posts PostLister) *DashboardService {
	return &DashboardService{exams: exams, results: results, posts: posts}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		exams []model.ExamSummary
		posts []model.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exams, err = s.exams.List(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.posts.List(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	sum := &DashboardSummary{
		TotalExams:    len(exams),
		TotalPosts:    len(posts),
		RecentResults: []RecentResult{},
	}

	titles := make(map[string]string, len(exams))
	ids := make([]string, len(exams))
	for i, e := range exams {
		ids[i] = e.ID
		titles[e.ID] = e.Title
		sum.TotalQuestions += e.QuestionCount
		if e.IsPublic {
			sum.PublicExams++
		}
	}
	for _, p := range posts {
		if p.IsPublic {
			sum.PublicPosts++
		}
	}

	histories, err := s.results.ListMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	var ratioSum float64
	var ratioN int
	for id, history := range histories {
		for _, r := range history {
			sum.RecentResults = append(sum.RecentResults, RecentResult{ExamTitle: titles[id], ExamResult: r})
			if r.MaxScore > 0 {
				ratioSum += r.Score / r.MaxScore
				ratioN++
			}
		}
	}
	sum.StoredResults = len(sum.RecentResults)
	if ratioN > 0 {
		sum.AverageRatio = ratioSum / float64(ratioN)
	}

	sort.Slice(sum.RecentResults, func(i, j int) bool {
		return sum.RecentResults[i].SubmittedAt.After(sum.RecentResults[j].SubmittedAt)
	})
	if len(sum.RecentResults) > recentResultsLimit {
		sum.RecentResults = sum.RecentResults[:recentResultsLimit]
	}
	return sum, nil
}
