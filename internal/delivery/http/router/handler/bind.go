// Package handler contains the echo handlers of the API server.
package handler

import (
	domainerrors "ridehail/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the JSON body into req, rejecting unknown fields,
// and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		message := "Invalid request body"
		if httpErr, ok := err.(*echo.HTTPError); ok {
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		return domainerrors.ErrBadRequest.WithDetails(message)
	}

	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(c echo.Context, name string) (*bool, error) {
	switch c.QueryParam(name) {
	case "":
		return nil, nil
	case "true", "1":
		v := true

		return &v, nil
	case "false", "0":
		v := false

		return &v, nil
	default:
		return nil, domainerrors.ErrBadRequest.WithDetails(name + " must be true or false")
	}
}
