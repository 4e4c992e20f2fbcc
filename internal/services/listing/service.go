package listing

import (
	"context"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// DefaultPageSize is used when a caller passes a non-positive page size
const DefaultPageSize = 100

// Service provides paged, deterministically ordered views over the entity
// store. Pages are 1-based; out-of-range pages yield an empty page, not an
// error.
type Service struct {
	storage storage.Storage
}

// New creates a new listing Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Page wraps one page of results with pagination metadata
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// normalize clamps page and pageSize to sane values
func normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// totalPages is ceil(count / pageSize); an empty collection has zero pages
func totalPages(count int64, pageSize int) int {
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

func buildPage[T any](items []T, page, pageSize int, count int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: count,
		TotalPages: totalPages(count, pageSize),
	}
}

// ListPlayers returns one page of players ordered by id
func (s *Service) ListPlayers(ctx context.Context, page, pageSize int) (Page[*model.Player], error) {
	page, pageSize = normalize(page, pageSize)
	count, err := s.storage.CountPlayers(ctx)
	if err != nil {
		return Page[*model.Player]{}, &model.PersistenceError{Op: "count players", Err: err}
	}
	items, err := s.storage.ListPlayers(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page[*model.Player]{}, &model.PersistenceError{Op: "list players", Err: err}
	}
	return buildPage(items, page, pageSize, count), nil
}

// ListTimeControls returns one page of time controls ordered by code
func (s *Service) ListTimeControls(ctx context.Context, page, pageSize int) (Page[*model.TimeControl], error) {
	page, pageSize = normalize(page, pageSize)
	count, err := s.storage.CountTimeControls(ctx)
	if err != nil {
		return Page[*model.TimeControl]{}, &model.PersistenceError{Op: "count time controls", Err: err}
	}
	items, err := s.storage.ListTimeControls(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page[*model.TimeControl]{}, &model.PersistenceError{Op: "list time controls", Err: err}
	}
	return buildPage(items, page, pageSize, count), nil
}

// ListOpenings returns one page of openings ordered by name
func (s *Service) ListOpenings(ctx context.Context, page, pageSize int) (Page[*model.Opening], error) {
	page, pageSize = normalize(page, pageSize)
	count, err := s.storage.CountOpenings(ctx)
	if err != nil {
		return Page[*model.Opening]{}, &model.PersistenceError{Op: "count openings", Err: err}
	}
	items, err := s.storage.ListOpenings(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page[*model.Opening]{}, &model.PersistenceError{Op: "list openings", Err: err}
	}
	return buildPage(items, page, pageSize, count), nil
}

// ListGames returns one page of games ordered by id
func (s *Service) ListGames(ctx context.Context, page, pageSize int) (Page[*model.Game], error) {
	page, pageSize = normalize(page, pageSize)
	count, err := s.storage.CountGames(ctx)
	if err != nil {
		return Page[*model.Game]{}, &model.PersistenceError{Op: "count games", Err: err}
	}
	items, err := s.storage.ListGames(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return Page[*model.Game]{}, &model.PersistenceError{Op: "list games", Err: err}
	}
	return buildPage(items, page, pageSize, count), nil
}
