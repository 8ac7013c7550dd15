package handlers

import (
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	service services.MemberServiceInterface
}

func NewMemberHandler(service services.MemberServiceInterface) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var body services.CreateMemberInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		respondError(c, err)
		return
	}

	member, err := h.service.CreateMember(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	memberId, err := utils.ParseObjectID(c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), memberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberId, err := utils.ParseObjectID(c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body services.UpdateMemberInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(body); err != nil {
		respondError(c, err)
		return
	}

	member, err := h.service.UpdateMember(c.Request.Context(), memberId, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberId, err := utils.ParseObjectID(c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.DeleteMember(c.Request.Context(), memberId); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}
