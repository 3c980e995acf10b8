package transport

import (
	"net/http"
	"strconv"

	"github.com/kollapso/booking/internal/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func gameID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid game id"})
		return 0, false
	}
	return id, true
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req service.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "game created",
		Data:    game,
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req service.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "game updated",
		Data:    game,
	})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	if err := h.gameService.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "game deleted"})
}
