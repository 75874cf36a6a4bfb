package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const indent = "    "

// MessageResponse is the body of every response that carries no data.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Encode renders v as JSON indented with four spaces. A json.RawMessage is
// returned untouched so relayed bodies stay byte-for-byte identical.
func Encode(v any) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	body, err := Encode(v)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body, _ = Encode(MessageResponse{Message: "Internal server error", Error: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// JSONMessage writes {"message": message}.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONError writes {"message": message, "error": err}.
func JSONError(w http.ResponseWriter, statusCode int, message string, err error) {
	resp := MessageResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	JSON(w, statusCode, resp)
}
