package handlers

import (
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateReservationRequest struct {
	BookId   string `json:"bookId" validate:"required"`
	MemberId string `json:"memberId" validate:"required"`
}

type ReservationHandler struct {
	service services.ReservationServiceInterface
}

func NewReservationHandler(service services.ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		respondError(c, err)
		return
	}

	bookId, err := utils.ParseObjectID(body.BookId)
	if err != nil {
		respondError(c, err)
		return
	}
	memberId, err := utils.ParseObjectID(body.MemberId)
	if err != nil {
		respondError(c, err)
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), bookId, memberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var memberId *primitive.ObjectID
	if raw := c.Query("memberId"); raw != "" {
		oid, err := utils.ParseObjectID(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		memberId = &oid
	}

	reservations, err := h.service.ListReservations(c.Request.Context(), memberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservationId, err := utils.ParseObjectID(c.Param("reservationId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.CancelReservation(c.Request.Context(), reservationId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled"})
}
