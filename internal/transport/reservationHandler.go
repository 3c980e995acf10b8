package transport

import (
	"net/http"

	"github.com/kollapso/booking/internal/service"
	"github.com/kollapso/booking/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService service.ReservationService
}

func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// ReservedDates feeds the per-game calendar the days it must disable.
func (h *ReservationHandler) ReservedDates(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	dates, err := h.reservationService.ReservedDates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reserved_dates": dates})
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req service.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), middleware.Caller(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "reservation created",
		Data:    reservation,
	})
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	reservations, err := h.reservationService.ListReservations(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), middleware.Caller(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req service.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	reservation, err := h.reservationService.UpdateReservation(c.Request.Context(), middleware.Caller(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "reservation updated",
		Data:    reservation,
	})
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	if err := h.reservationService.CancelReservation(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "reservation cancelled"})
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	if err := h.reservationService.DeleteReservation(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "reservation deleted"})
}
