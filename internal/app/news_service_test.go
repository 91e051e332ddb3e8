package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsline/internal/model"
	"newsline/internal/repository"
)

func newTestNewsService(t *testing.T) (*NewsService, *repository.NewsRepository, *repository.CategoryRepository, *recordingSink) {
	t.Helper()
	db := newTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	sink := &recordingSink{}
	return NewNewsService(categoryRepo, newsRepo, sink, nil), newsRepo, categoryRepo, sink
}

func seedArticle(t *testing.T, repo *repository.NewsRepository, categoryID uint, title string, views uint64, publishTime time.Time) *model.News {
	t.Helper()
	news := &model.News{
		CategoryID:  categoryID,
		Title:       title,
		Content:     "content of " + title,
		Author:      "staff",
		PublishTime: publishTime,
		Views:       views,
	}
	require.NoError(t, repo.Create(context.Background(), news))
	return news
}

func TestNewsService_GetCategories(t *testing.T) {
	svc, _, categoryRepo, _ := newTestNewsService(t)
	ctx := context.Background()

	for _, name := range []string{"tech", "sports", "finance"} {
		require.NoError(t, categoryRepo.Create(ctx, &model.Category{Name: name}))
	}

	categories, err := svc.GetCategories(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	// negative skip and zero limit fall back to sane defaults
	categories, err = svc.GetCategories(ctx, -1, 0)
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}

func TestNewsService_GetNewsList_Windows(t *testing.T) {
	svc, newsRepo, _, _ := newTestNewsService(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedArticle(t, newsRepo, 1, "article", 0, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := svc.GetNewsList(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.List, 10)
	assert.Equal(t, int64(25), first.Total)
	assert.True(t, first.HasMore)

	last, err := svc.GetNewsList(ctx, 1, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.List, 5)
	assert.Equal(t, int64(25), last.Total)
	assert.False(t, last.HasMore)
}

func TestNewsService_GetNewsList_InvalidPageSize(t *testing.T) {
	svc, _, _, _ := newTestNewsService(t)

	_, err := svc.GetNewsList(context.Background(), 1, 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewsService_GetNewsDetail(t *testing.T) {
	svc, newsRepo, _, sink := newTestNewsService(t)
	ctx := context.Background()

	t1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	current := seedArticle(t, newsRepo, 1, "current", 3, t1)
	popular := seedArticle(t, newsRepo, 1, "popular", 50, t1)
	recent := seedArticle(t, newsRepo, 1, "recent", 50, t1.Add(time.Hour))
	seedArticle(t, newsRepo, 2, "other category", 999, t1)

	result, err := svc.GetNewsDetail(ctx, current.ID)
	require.NoError(t, err)

	assert.Equal(t, current.ID, result.News.ID)
	assert.Equal(t, uint64(4), result.News.Views, "the returned detail reflects this read")

	require.Len(t, result.RelatedNews, 2)
	assert.Equal(t, recent.ID, result.RelatedNews[0].ID)
	assert.Equal(t, popular.ID, result.RelatedNews[1].ID)

	require.Len(t, sink.events, 1)
	assert.Equal(t, current.ID, sink.events[0].NewsID)

	stored, err := newsRepo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), stored.Views)
}

func TestNewsService_GetNewsDetail_NotFound(t *testing.T) {
	svc, _, _, sink := newTestNewsService(t)

	_, err := svc.GetNewsDetail(context.Background(), 31337)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNewsNotFound)
	assert.Empty(t, sink.events)
}

func TestNewsService_GetNewsDetail_PublishFailureDoesNotFailRequest(t *testing.T) {
	db := newTestDB(t)
	newsRepo := repository.NewNewsRepository(db)
	sink := &recordingSink{err: errors.New("broker down")}
	svc := NewNewsService(repository.NewCategoryRepository(db), newsRepo, sink, nil)

	article := seedArticle(t, newsRepo, 1, "resilient", 0, time.Now())

	result, err := svc.GetNewsDetail(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.News.Views)
}

func TestNewsService_GetHotNews(t *testing.T) {
	db := newTestDB(t)
	newsRepo := repository.NewNewsRepository(db)

	ts := time.Now()
	n1 := seedArticle(t, newsRepo, 1, "first", 10, ts)
	n2 := seedArticle(t, newsRepo, 1, "second", 5, ts)

	board := &stubHotBoard{ids: []uint{n2.ID, n1.ID}}
	svc := NewNewsService(repository.NewCategoryRepository(db), newsRepo, nil, board)

	hot, err := svc.GetHotNews(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, hot, 2)
	assert.Equal(t, n2.ID, hot[0].ID, "leaderboard order wins over storage order")
	assert.Equal(t, n1.ID, hot[1].ID)
}

func TestNewsService_GetHotNews_EmptyBoard(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(
		repository.NewCategoryRepository(db),
		repository.NewNewsRepository(db),
		nil,
		&stubHotBoard{},
	)

	hot, err := svc.GetHotNews(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, hot)
}
