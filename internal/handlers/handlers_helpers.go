package handlers

import (
	"ai-chat-backend/internal/auth"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/pkg/httputil"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxJSONBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeRequest reads a JSON body into dst and validates it. On failure it
// writes the response itself and returns false: 400 for a body that is not
// JSON, 422 for JSON of the wrong shape.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httputil.RespondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Field %q has the wrong type", typeErr.Field))
			return false
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		httputil.RespondError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request payload"
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return "Missing or invalid fields: " + strings.Join(fields, ", ")
}

// currentUser returns the user placed in the context by the auth middleware,
// answering 401 itself when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondUnauthorized(w, "Not authenticated")
		return nil, false
	}
	return user, true
}
