package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeAndValidate decodes the request body into v and runs struct-tag
// validation on it. On failure it writes the error response itself and
// returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := DecodeJSON(r, v); err != nil {
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeInvalidJSON, "invalid json", nil, "")
		return false
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[strings.ToLower(fe.Field())] = fe.Tag()
			}
			WriteErrorEnvelope(w, http.StatusBadRequest, CodeValidationFailed, "validation failed", details, "")
			return false
		}
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeBadRequest, "bad request", nil, "")
		return false
	}

	return true
}
