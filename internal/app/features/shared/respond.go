// Package shared holds small helpers used by every feature package.
package shared

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK is the common success envelope.
type OK struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Redirect is the success envelope for flows that move the client.
type Redirect struct {
	Ok       bool   `json:"ok"`
	Redirect string `json:"redirect"`
}
