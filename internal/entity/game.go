package entity

import (
	"time"
)

// Game is one rentable board game from the catalog. Each game carries its
// own reservation calendar.
type Game struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	MinPlayers  int       `json:"min_players" db:"min_players"`
	MaxPlayers  int       `json:"max_players" db:"max_players"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
