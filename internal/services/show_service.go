package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/tmdb"
)

// ShowSearcher is the slice of the TMDB client used by the proxy.
type ShowSearcher interface {
	SearchTV(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
}

// ShowService proxies TMDB TV search and re-paginates results to the
// application page size.
type ShowService struct {
	client   ShowSearcher
	pageSize int
	logger   *slog.Logger
}

func NewShowService(client ShowSearcher, pageSize int, logger *slog.Logger) *ShowService {
	return &ShowService{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Search looks up TV series matching query. The external page of results is
// cut down to the configured page size and total_pages is recomputed against
// that size; page and total_results pass through unchanged.
func (s *ShowService) Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, fmt.Errorf("query must be at least 2 characters: %w", models.ErrValidation)
	}
	if page < 1 {
		page = 1
	}

	resp, err := s.client.SearchTV(ctx, query, page)
	if err != nil {
		s.logger.Error("tmdb search failed", slog.String("query", query), slog.Any("error", err))
		return nil, fmt.Errorf("show search failed: %w", models.ErrExternalService)
	}

	results := resp.Results
	if len(results) > s.pageSize {
		results = results[:s.pageSize]
	}

	return &tmdb.SearchResponse{
		Page:         resp.Page,
		Results:      results,
		TotalPages:   (resp.TotalResults + s.pageSize - 1) / s.pageSize,
		TotalResults: resp.TotalResults,
	}, nil
}
