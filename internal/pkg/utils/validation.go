package utils

import (
	"fmt"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// ValidateStruct runs validator tags over a request payload and folds any
// failure into the service error taxonomy.
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return &models.CustomError{Code: consts.ErrCodeValidation, Message: err.Error()}
	}
	return nil
}

// ParseObjectID converts a path/body id into an ObjectID, rejecting malformed
// input as a validation failure rather than a store-level error.
func ParseObjectID(value string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: fmt.Sprintf("invalid id %q", value),
		}
	}
	return oid, nil
}
