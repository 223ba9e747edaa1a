package validator

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ridehail/internal/errors"

	"github.com/labstack/echo/v4"
)

// StrictJSONSerializer is echo's default serializer with unknown fields
// rejected on decode.
type StrictJSONSerializer struct {
	echo.DefaultJSONSerializer
}

// NewJSONSerializer returns the serializer installed on the API server.
func NewJSONSerializer() echo.JSONSerializer {
	return StrictJSONSerializer{}
}

// Deserialize reads a JSON request body into i.
func (StrictJSONSerializer) Deserialize(c echo.Context, i any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(i)
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &typeErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid value for field %q: expected %v", typeErr.Field, typeErr.Type)).SetInternal(err)
	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset)).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
}
