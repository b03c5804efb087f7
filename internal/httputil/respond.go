// Package httputil provides the JSON response helpers shared by handlers and
// middleware.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/devlink-network/devlink/internal/errors"
)

type errorBody struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DecodeJSON decodes a request body into dst, rejecting unknown fields.
func DecodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError maps err onto the wire: service errors keep their status, code
// and details; anything else (and internal errors) surfaces opaquely as 500.
func WriteError(w http.ResponseWriter, err error) {
	se := errors.GetServiceError(err)
	if se == nil || se.Code == errors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, errorBody{
			Error: "internal server error",
			Code:  string(errors.CodeInternal),
		})
		return
	}
	WriteJSON(w, se.HTTPStatus, errorBody{
		Error:   se.Message,
		Code:    string(se.Code),
		Details: se.Details,
	})
}

// WriteErrorResponse writes an explicit error payload; used where no error
// value exists yet, such as middleware rejections.
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	WriteJSON(w, status, errorBody{Error: message, Code: code, Details: details})
}
