package server

import (
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/arcstrata/pkg/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// writeError renders err as an ErrorResponse. Uncoded and internal errors
// are reported without exposing their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(err)
	resp.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, status, resp)
}

func errorResponse(err error) (int, ErrorResponse) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    errors.ErrCodeInvalidInput,
			Message: "request body too large",
		}
	}

	code := errors.GetCode(err)
	if code == "" {
		return http.StatusInternalServerError, ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "internal error",
		}
	}
	status := errors.HTTPStatus(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return status, ErrorResponse{Code: code, Message: msg}
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path)
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Code:      errors.ErrCodeUnsupported,
		Message:   "method " + r.Method + " not allowed on " + r.URL.Path,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
