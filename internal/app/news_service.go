package app

import (
	"context"
	"errors"
	"log"
	"time"

	"newsline/internal/model"
	"newsline/internal/pagination"
	"newsline/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNewsNotFound = errors.New("news not found")
)

const relatedNewsLimit = 5

// ViewEventSink receives one event per successful detail read. The
// broker publisher implements it; delivery is best effort and never
// fails the request.
type ViewEventSink interface {
	Publish(ctx context.Context, event model.ViewEvent) error
}

// HotBoard serves the engagement leaderboard, highest score first.
type HotBoard interface {
	TopNewsIDs(ctx context.Context, limit int) ([]uint, error)
}

type NewsService struct {
	categoryRepo *repository.CategoryRepository
	newsRepo     *repository.NewsRepository
	events       ViewEventSink
	hotBoard     HotBoard
}

type NewsListResult struct {
	List    []model.News
	Total   int64
	HasMore bool
}

type NewsDetailResult struct {
	News        *model.News
	RelatedNews []model.NewsSummary
}

func NewNewsService(
	categoryRepo *repository.CategoryRepository,
	newsRepo *repository.NewsRepository,
	events ViewEventSink,
	hotBoard HotBoard,
) *NewsService {
	return &NewsService{
		categoryRepo: categoryRepo,
		newsRepo:     newsRepo,
		events:       events,
		hotBoard:     hotBoard,
	}
}

func (s *NewsService) GetCategories(ctx context.Context, skip, limit int) ([]model.Category, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > pagination.MaxPageSize {
		limit = pagination.MaxPageSize
	}
	return s.categoryRepo.List(ctx, skip, limit)
}

func (s *NewsService) GetNewsList(ctx context.Context, categoryID uint, page, pageSize int) (*NewsListResult, error) {
	window, err := pagination.NewWindow(page, pageSize)
	if err != nil {
		return nil, ErrInvalidInput
	}

	list, err := s.newsRepo.ListByCategory(ctx, categoryID, window.Offset, window.Limit)
	if err != nil {
		return nil, err
	}
	total, err := s.newsRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return &NewsListResult{
		List:    list,
		Total:   total,
		HasMore: window.HasMore(len(list), total),
	}, nil
}

// GetNewsDetail reads the article, bumps its view counter and collects
// related articles. The increment result is re-checked: the row could
// have been deleted between fetch and update, in which case the read
// reports not found. A committed increment is not undone when a later
// step fails.
func (s *NewsService) GetNewsDetail(ctx context.Context, newsID uint) (*NewsDetailResult, error) {
	news, err := s.newsRepo.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}

	affected, err := s.newsRepo.IncrementViews(ctx, news.ID)
	if err != nil {
		return nil, err
	}
	if !affected {
		return nil, ErrNewsNotFound
	}
	news.Views++

	related, err := s.newsRepo.ListRelated(ctx, news.ID, news.CategoryID, relatedNewsLimit)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		event := model.ViewEvent{NewsID: news.ID, ViewedAt: time.Now()}
		if pubErr := s.events.Publish(ctx, event); pubErr != nil {
			log.Printf("publish view event failed: %v", pubErr)
		}
	}

	return &NewsDetailResult{News: news, RelatedNews: related}, nil
}

// GetHotNews resolves the leaderboard into summaries. Articles that
// have been scored but no longer exist in storage are dropped.
func (s *NewsService) GetHotNews(ctx context.Context, limit int) ([]model.NewsSummary, error) {
	if limit < 1 || limit > pagination.MaxPageSize {
		limit = pagination.DefaultPageSize
	}
	if s.hotBoard == nil {
		return []model.NewsSummary{}, nil
	}

	ids, err := s.hotBoard.TopNewsIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.NewsSummary{}, nil
	}
	return s.newsRepo.ListByIDs(ctx, ids)
}
