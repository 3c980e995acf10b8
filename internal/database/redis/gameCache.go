package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/kollapso/booking/internal/entity"

	"github.com/redis/go-redis/v9"
)

// GameCache keeps catalog reads off postgres. Only the catalog is cached;
// occupied-date feeds are always recomputed from the datastore.
type GameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameCache(client *redis.Client, ttl time.Duration) *GameCache {
	return &GameCache{
		client: client,
		ttl:    ttl,
	}
}

const gameListKey = "games:all"

func gameKey(id int64) string {
	return "game:" + strconv.FormatInt(id, 10)
}

func (c *GameCache) SetGame(ctx context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, gameKey(game.ID), data, c.ttl).Err()
}

func (c *GameCache) GetGame(ctx context.Context, id int64) (*entity.Game, error) {
	data, err := c.client.Get(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var game entity.Game
	err = json.Unmarshal([]byte(data), &game)
	if err != nil {
		return nil, err
	}

	return &game, nil
}

func (c *GameCache) SetGameList(ctx context.Context, games []*entity.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, gameListKey, data, c.ttl).Err()
}

func (c *GameCache) GetGameList(ctx context.Context) ([]*entity.Game, error) {
	data, err := c.client.Get(ctx, gameListKey).Result()
	if err != nil {
		return nil, err
	}

	var games []*entity.Game
	err = json.Unmarshal([]byte(data), &games)
	if err != nil {
		return nil, err
	}

	return games, nil
}

// Invalidate drops a single game and the list after any catalog write.
func (c *GameCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, gameKey(id), gameListKey).Err()
}
