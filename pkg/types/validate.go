// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateKnowledgePoint checks a knowledge point against its struct tags
// before it enters the index. The returned error is human-readable and is
// used verbatim as a per-item rejection reason.
func ValidateKnowledgePoint(kp KnowledgePoint) error {
	return validateStruct(kp)
}

// ValidateQuestion checks a question against its struct tags before it
// enters the bank.
func ValidateQuestion(q Question) error {
	return validateStruct(q)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
