package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/middleware"
	"github.com/Domenick1991/spaceflights/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.ReservationUseCase
}

type createBookingRequest struct {
	FlightNumber string `json:"flight_number"`
}

type bookingResponse struct {
	ID           int64  `json:"id"`
	User         int64  `json:"user"`
	Flight       int64  `json:"flight"`
	FlightNumber string `json:"flight_number"`
	CreatedAt    string `json:"created_at"`
}

func NewBookingHandler(service booking.ReservationUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id/", h.get)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		User:         b.UserID,
		Flight:       b.FlightID,
		FlightNumber: b.FlightNumber,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), userID, req.FlightNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(list))
	for i := range list {
		out = append(out, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}
