package handlers

import (
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	service services.CatalogServiceInterface
}

func NewBookHandler(service services.CatalogServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var body services.CreateBookInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		respondError(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	bookId, err := utils.ParseObjectID(c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), bookId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	query := services.BookQuery{
		Category: c.Query("category"),
		Status:   models.BookStatus(c.Query("status")),
	}

	books, err := h.service.ListBooks(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookId, err := utils.ParseObjectID(c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body services.UpdateBookInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), bookId, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookId, err := utils.ParseObjectID(c.Param("bookId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), bookId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
