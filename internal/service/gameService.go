package service

import (
	"context"
	"fmt"

	repository "github.com/kollapso/booking/internal/database/postgres"
	"github.com/kollapso/booking/internal/entity"

	"github.com/sirupsen/logrus"
)

// GameRequest carries the catalog form for create and full update
type GameRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MinPlayers  int    `json:"min_players" binding:"required,min=1"`
	MaxPlayers  int    `json:"max_players" binding:"required,min=1"`
}

// GameCache is the catalog read cache. Errors from it only cost a postgres
// round trip, never fail the request.
type GameCache interface {
	GetGame(ctx context.Context, id int64) (*entity.Game, error)
	SetGame(ctx context.Context, game *entity.Game) error
	GetGameList(ctx context.Context) ([]*entity.Game, error)
	SetGameList(ctx context.Context, games []*entity.Game) error
	Invalidate(ctx context.Context, id int64) error
}

type gameService struct {
	gameRepo repository.GameRepository
	cache    GameCache
}

// NewGameService creates a new GameService. cache may be nil when redis is
// not configured.
func NewGameService(gameRepo repository.GameRepository, cache GameCache) GameService {
	return &gameService{
		gameRepo: gameRepo,
		cache:    cache,
	}
}

func (s *gameService) CreateGame(ctx context.Context, req *GameRequest) (*entity.Game, error) {
	if req.MaxPlayers < req.MinPlayers {
		return nil, fmt.Errorf("%w: max_players below min_players", entity.ErrInvalidInput)
	}

	game := &entity.Game{
		Title:       req.Title,
		Description: req.Description,
		MinPlayers:  req.MinPlayers,
		MaxPlayers:  req.MaxPlayers,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.invalidate(ctx, game.ID)
	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (*entity.Game, error) {
	if s.cache != nil {
		if game, err := s.cache.GetGame(ctx, id); err == nil {
			return game, nil
		}
	}

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetGame(ctx, game); err != nil {
			logrus.Errorf("Failed to cache game %d: %v", id, err)
		}
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]*entity.Game, error) {
	if s.cache != nil {
		if games, err := s.cache.GetGameList(ctx); err == nil {
			return games, nil
		}
	}

	games, err := s.gameRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetGameList(ctx, games); err != nil {
			logrus.Errorf("Failed to cache game list: %v", err)
		}
	}
	return games, nil
}

func (s *gameService) UpdateGame(ctx context.Context, id int64, req *GameRequest) (*entity.Game, error) {
	if req.MaxPlayers < req.MinPlayers {
		return nil, fmt.Errorf("%w: max_players below min_players", entity.ErrInvalidInput)
	}

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Title = req.Title
	game.Description = req.Description
	game.MinPlayers = req.MinPlayers
	game.MaxPlayers = req.MaxPlayers

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	s.invalidate(ctx, id)
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *gameService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logrus.Errorf("Failed to invalidate game cache %d: %v", id, err)
	}
}
