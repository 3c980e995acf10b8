package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kollapso/booking/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGameCache records hits so the cache-aside path can be asserted
type fakeGameCache struct {
	games     map[int64]*entity.Game
	list      []*entity.Game
	listSet   bool
	setCalls  int
	listCalls int
}

func newFakeGameCache() *fakeGameCache {
	return &fakeGameCache{games: make(map[int64]*entity.Game)}
}

func (c *fakeGameCache) GetGame(_ context.Context, id int64) (*entity.Game, error) {
	g, ok := c.games[id]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return g, nil
}

func (c *fakeGameCache) SetGame(_ context.Context, game *entity.Game) error {
	c.setCalls++
	c.games[game.ID] = game
	return nil
}

func (c *fakeGameCache) GetGameList(_ context.Context) ([]*entity.Game, error) {
	if !c.listSet {
		return nil, errors.New("cache miss")
	}
	return c.list, nil
}

func (c *fakeGameCache) SetGameList(_ context.Context, games []*entity.Game) error {
	c.listCalls++
	c.list = games
	c.listSet = true
	return nil
}

func (c *fakeGameCache) Invalidate(_ context.Context, id int64) error {
	delete(c.games, id)
	c.list = nil
	c.listSet = false
	return nil
}

func TestCreateGame(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), nil)

	game, err := svc.CreateGame(context.Background(), &GameRequest{
		Title:      "Carcassonne",
		MinPlayers: 2,
		MaxPlayers: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, game.ID)

	_, err = svc.CreateGame(context.Background(), &GameRequest{
		Title:      "Broken",
		MinPlayers: 4,
		MaxPlayers: 2,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestGetGameCacheAside(t *testing.T) {
	cache := newFakeGameCache()
	svc := NewGameService(newFakeGameRepo(1), cache)

	// first read misses the cache and fills it
	_, err := svc.GetGame(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	// second read is served from the cache
	_, err = svc.GetGame(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	_, err = svc.GetGame(context.Background(), 42)
	assert.ErrorIs(t, err, entity.ErrGameNotFound)
}

func TestListGamesCacheAside(t *testing.T) {
	cache := newFakeGameCache()
	svc := NewGameService(newFakeGameRepo(1, 2), cache)

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, 1, cache.listCalls)

	_, err = svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.listCalls)
}

func TestUpdateGameInvalidatesCache(t *testing.T) {
	cache := newFakeGameCache()
	repo := newFakeGameRepo(1)
	svc := NewGameService(repo, cache)

	_, err := svc.GetGame(context.Background(), 1)
	require.NoError(t, err)

	updated, err := svc.UpdateGame(context.Background(), 1, &GameRequest{
		Title:      "Catan",
		MinPlayers: 3,
		MaxPlayers: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Catan", updated.Title)

	// cache entry is gone, next read goes to the repository
	_, err = cache.GetGame(context.Background(), 1)
	assert.Error(t, err)
}

func TestDeleteGame(t *testing.T) {
	repo := newFakeGameRepo(1)
	svc := NewGameService(repo, nil)

	require.NoError(t, svc.DeleteGame(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteGame(context.Background(), 1), entity.ErrGameNotFound)
}
