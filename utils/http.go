package utils

import (
	"encoding/json"
	"net/http"
)

const (
	// CodeSuccess is the envelope code of a successful response
	CodeSuccess = 200

	// CodeFailure is the envelope code of every error response
	CodeFailure = 0
)

// Response is the envelope every endpoint answers with
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with optional data
func WriteOK(w http.ResponseWriter, msg string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{Code: CodeSuccess, Msg: msg, Data: data})
}

// WriteBizError writes a business failure. The HTTP status stays 200 and the
// envelope code signals the failure.
func WriteBizError(w http.ResponseWriter, msg string) error {
	return WriteError(w, http.StatusOK, msg)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, msg string) error {
	return WriteError(w, http.StatusBadRequest, msg)
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, msg string) error {
	if msg == "" {
		msg = "unauthenticated"
	}
	return WriteError(w, http.StatusUnauthorized, msg)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, msg string) error {
	if msg == "" {
		msg = "Not Found"
	}
	return WriteError(w, http.StatusNotFound, msg)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, msg string) error {
	if msg == "" {
		msg = "Internal Server Error"
	}
	return WriteError(w, http.StatusInternalServerError, msg)
}

// WriteError writes an error envelope with the given status code
func WriteError(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, Response{Code: CodeFailure, Msg: msg})
}
