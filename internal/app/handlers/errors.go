package handlers

import (
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

func statusForCode(code string) int {
	switch code {
	case consts.ErrCodeNotFound:
		return http.StatusNotFound
	case consts.ErrCodeUnavailable, consts.ErrCodeAlreadyReturned:
		return http.StatusConflict
	case consts.ErrCodeValidation:
		return http.StatusBadRequest
	case consts.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case consts.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := utils.GetErrorCode(err)
	c.JSON(statusForCode(code), gin.H{"code": code, "error": err.Error()})
}
