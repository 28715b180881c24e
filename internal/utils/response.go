package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse writes {"success", "message", ...data, "error"} with the given status.
// Keys of data are merged into the top level so payloads read as {"success": true, "course": {...}}.
func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, data map[string]interface{}, err interface{}) {
	body := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		body[k] = v
	}
	body["success"] = success
	if message != "" {
		body["message"] = message
	}
	if err != nil {
		if e, ok := err.(error); ok {
			err = e.Error()
		}
		body["error"] = err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
