package utils

import "github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

func GetErrorCode(err error) string {
	if customErr, ok := err.(*models.CustomError); ok {
		return customErr.ErrorCode()
	}
	return "CIRCULATION_INTERNAL_ERROR"
}
