package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-gamereview-api/internal/core/cache"
	"go-gamereview-api/internal/domain"
)

const (
	gamesListKey = "games:list"
	gameCacheTTL = 30 * time.Second
)

func gameKey(id uint) string { return fmt.Sprintf("games:%d", id) }

// GameService 目录 CRUD；读路径可选走 redis 缓存，写路径统一失效
type GameService struct {
	games domain.GameRepository
	cache *cache.Cache // 可为 nil
}

func NewGameService(games domain.GameRepository, c *cache.Cache) *GameService {
	return &GameService{games: games, cache: c}
}

func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	if s.cache == nil {
		return s.games.FindAll(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Game](s.cache, ctx, gamesListKey, gameCacheTTL,
		func(ctx context.Context) (*[]domain.Game, error) {
			games, e := s.games.FindAll(ctx)
			if e != nil {
				return nil, e
			}
			return &games, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Game{}, nil
	}
	return *out, nil
}

func (s *GameService) GetByID(ctx context.Context, id uint) (*domain.Game, error) {
	var g *domain.Game
	var err error
	if s.cache != nil {
		g, err = cache.GetOrLoadJSON[domain.Game](s.cache, ctx, gameKey(id), gameCacheTTL,
			func(ctx context.Context) (*domain.Game, error) {
				return s.games.FindByID(ctx, id)
			})
	} else {
		g, err = s.games.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NotFound("game not found")
	}
	return g, nil
}

func (s *GameService) Create(ctx context.Context, title, genre string) (*domain.Game, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.Validation("title is required")
	}
	if strings.TrimSpace(genre) == "" {
		return nil, domain.Validation("genre is required")
	}
	existing, err := s.games.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Validation("a game with this title already exists")
	}

	g := &domain.Game{Title: title, Genre: genre}
	if err := s.games.Create(ctx, g); err != nil {
		return nil, err
	}
	s.invalidate(ctx, g.ID)
	return g, nil
}

func (s *GameService) Update(ctx context.Context, id uint, title, genre *string) (*domain.Game, error) {
	g, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NotFound("game not found")
	}
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, domain.Validation("title cannot be empty")
		}
		existing, err := s.games.FindByTitle(ctx, *title)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Validation("a game with this title already exists")
		}
		g.Title = *title
	}
	if genre != nil {
		if strings.TrimSpace(*genre) == "" {
			return nil, domain.Validation("genre cannot be empty")
		}
		g.Genre = *genre
	}
	if err := s.games.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return g, nil
}

func (s *GameService) Delete(ctx context.Context, id uint) error {
	g, err := s.games.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.NotFound("game not found")
	}
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *GameService) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		s.cache.Delete(ctx, gamesListKey, gameKey(id))
	}
}
