package handlers

import (
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IssueDueRequest struct {
	BookId   string `json:"bookId" validate:"required"`
	MemberId string `json:"memberId" validate:"required"`
}

type ReturnDueRequest struct {
	FineAmount *int64 `json:"fineAmount"`
}

type SettleFineRequest struct {
	Outcome models.DueStatus `json:"outcome" validate:"required,oneof=paid waived"`
}

type DueHandler struct {
	service services.LedgerServiceInterface
}

func NewDueHandler(service services.LedgerServiceInterface) *DueHandler {
	return &DueHandler{service: service}
}

func (h *DueHandler) IssueDue(c *gin.Context) {
	var body IssueDueRequest
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

	due, err := h.service.Issue(c.Request.Context(), bookId, memberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, due)
}

func (h *DueHandler) GetDue(c *gin.Context) {
	dueId, err := utils.ParseObjectID(c.Param("dueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	due, err := h.service.GetDue(c.Request.Context(), dueId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

func (h *DueHandler) ListDues(c *gin.Context) {
	var memberId *primitive.ObjectID
	if raw := c.Query("memberId"); raw != "" {
		oid, err := utils.ParseObjectID(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		memberId = &oid
	}

	dues, err := h.service.ListDues(c.Request.Context(), memberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dues": dues})
}

func (h *DueHandler) ReturnDue(c *gin.Context) {
	dueId, err := utils.ParseObjectID(c.Param("dueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body ReturnDueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	due, err := h.service.ReturnItem(c.Request.Context(), dueId, body.FineAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

func (h *DueHandler) SettleFine(c *gin.Context) {
	dueId, err := utils.ParseObjectID(c.Param("dueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body SettleFineRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		respondError(c, err)
		return
	}

	due, err := h.service.SettleFine(c.Request.Context(), dueId, body.Outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

func (h *DueHandler) DeleteDue(c *gin.Context) {
	dueId, err := utils.ParseObjectID(c.Param("dueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.DeleteDue(c.Request.Context(), dueId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "due deleted"})
}
