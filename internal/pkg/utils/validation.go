package utils

import (
	"preauth-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("decision", validateDecision)
	validate.RegisterValidation("case_status", validateCaseStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDecision(fl validator.FieldLevel) bool {
	return models.Decision(fl.Field().String()).IsValid()
}

func validateCaseStatus(fl validator.FieldLevel) bool {
	return models.CaseStatus(fl.Field().String()).IsValid()
}
