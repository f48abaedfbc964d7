package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// writeError responds with the uniform error payload every handler uses, so
// clients can always read .error regardless of which endpoint failed.
func writeError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// decodeBody reads the JSON request body into dst. Unknown fields are
// rejected so typos in client payloads surface as 400s instead of silently
// doing nothing.
func decodeBody(e *core.RequestEvent, dst any) error {
	dec := json.NewDecoder(e.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// badRequest is a shorthand for decode failures.
func badRequest(e *core.RequestEvent, err error) error {
	return writeError(e, http.StatusBadRequest, err.Error())
}
