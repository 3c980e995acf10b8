package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kollapso/booking/internal/entity"
)

type gameRepository struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	query := `
		INSERT INTO games (title, description, min_players, max_players, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		game.Title,
		game.Description,
		game.MinPlayers,
		game.MaxPlayers,
		now,
		now,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	game.CreatedAt = now
	game.UpdatedAt = now
	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	query := `
		SELECT id, title, description, min_players, max_players, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	var game entity.Game
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID,
		&game.Title,
		&game.Description,
		&game.MinPlayers,
		&game.MaxPlayers,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}

	return &game, nil
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*entity.Game, error) {
	query := `
		SELECT id, title, description, min_players, max_players, created_at, updated_at
		FROM games
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	defer rows.Close()

	var games []*entity.Game
	for rows.Next() {
		var game entity.Game
		err := rows.Scan(
			&game.ID,
			&game.Title,
			&game.Description,
			&game.MinPlayers,
			&game.MaxPlayers,
			&game.CreatedAt,
			&game.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &game)
	}

	return games, rows.Err()
}

func (r *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	query := `
		UPDATE games
		SET title = $1, description = $2, min_players = $3, max_players = $4, updated_at = $5
		WHERE id = $6
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		game.Title,
		game.Description,
		game.MinPlayers,
		game.MaxPlayers,
		now,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrGameNotFound
	}

	game.UpdatedAt = now
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrGameNotFound
	}
	return nil
}
