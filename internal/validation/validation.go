// Package validation schema-checks request payloads before any handler logic
// runs. Rules and message wording mirror the API contract: the first failed
// rule produces a single bad-request error naming the offending field.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
)

var validate = validator.New()

type CreateItemRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Cuisine string `json:"cuisine" validate:"required"`
	Address string `json:"address" validate:"required,min=5"`
	Image   string `json:"image" validate:"required,url"`
	Website string `json:"website" validate:"required,url"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// messages maps struct name -> "Field.tag" -> client-facing message.
var messages = map[string]map[string]string{
	"CreateItemRequest": {
		"Name.required":    `The "name" field must be filled in.`,
		"Name.min":         `The minimum length of the "name" field is 2 characters.`,
		"Name.max":         `The maximum length of the "name" field is 100 characters.`,
		"Cuisine.required": `The "cuisine" field is required.`,
		"Address.required": `The "address" field is required.`,
		"Address.min":      `The minimum length of the "address" field is 5 characters.`,
		"Image.required":   `The "image" field must be filled in.`,
		"Image.url":        `The "image" field must be a valid url.`,
		"Website.required": `The "website" field must be filled in.`,
		"Website.url":      `The "website" field must be a valid url.`,
	},
	"CreateUserRequest": {
		"Name.required":     `The "name" field must be filled in.`,
		"Name.min":          `The minimum length of the "name" field is 2 characters.`,
		"Name.max":          `The maximum length of the "name" field is 30 characters.`,
		"Avatar.url":        `The "avatar" field must be a valid url.`,
		"Email.required":    `The "email" field must be filled in.`,
		"Email.email":       `The "email" field must be a valid email address.`,
		"Password.required": `The "password" field must be filled in.`,
	},
	"LoginRequest": {
		"Email.required":    `The "email" field must be filled in.`,
		"Email.email":       `The "email" field must be a valid email address.`,
		"Password.required": `The "password" field must be filled in.`,
	},
	"UpdateProfileRequest": {
		"Name.required": `The "name" field must be filled in.`,
		"Name.min":      `The minimum length of the "name" field is 2 characters.`,
		"Name.max":      `The maximum length of the "name" field is 30 characters.`,
		"Avatar.url":    `The "avatar" field must be a valid URL.`,
	},
}

// Check validates a request struct and converts the first rule violation into
// a bad-request error with its configured message.
func Check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.BadRequest("Invalid data provided.")
	}

	first := verrs[0]
	structName := first.StructNamespace()
	if i := strings.Index(structName, "."); i >= 0 {
		structName = structName[:i]
	}
	if byField, ok := messages[structName]; ok {
		if msg, ok := byField[first.StructField()+"."+first.Tag()]; ok {
			return apperr.BadRequest(msg)
		}
	}

	return apperr.BadRequest(fmt.Sprintf("The %q field is invalid.", strings.ToLower(first.StructField())))
}

var hexID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether id matches the 24-hex-character record ID format.
func IsValidID(id string) bool {
	return hexID.MatchString(id)
}

// ItemID validates a path parameter against the record ID format.
func ItemID(id string) error {
	switch {
	case id == "":
		return apperr.BadRequest(`The "id" field must be filled in.`)
	case len(id) != 24:
		return apperr.BadRequest(`The "id" must be 24 characters.`)
	case !hexID.MatchString(id):
		return apperr.BadRequest(`The "id" must be a hexadecimal value.`)
	}
	return nil
}
