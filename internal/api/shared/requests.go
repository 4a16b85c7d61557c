package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds the size of a decoded JSON body.
const MaxRequestBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

var errUnexpectedData = errors.New("unexpected data after JSON object")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON decodes the request body into v, rejecting unknown fields
// and trailing data.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return errUnexpectedData
	}
	return nil
}

// ValidateRequest validates v using its struct tags.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
