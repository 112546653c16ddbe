package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes body with the given status code. Encoding errors are
// ignored because the header has already been sent.
func ResponseJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func success(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, Response{Status: true, Message: message, Data: data})
}

func failure(w http.ResponseWriter, code int, message string, data, errs any) {
	ResponseJSON(w, code, Response{Status: false, Message: message, Data: data, Errors: errs})
}

// 200
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusOK, message, data)
}

// 201
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	success(w, http.StatusCreated, message, data)
}

// ResponseBadRequest returns 400; errs is usually the field → message map from ValidateStruct.
func ResponseBadRequest(w http.ResponseWriter, message string, errs any) {
	failure(w, http.StatusBadRequest, message, nil, errs)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	failure(w, http.StatusUnauthorized, message, nil, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	failure(w, http.StatusForbidden, message, nil, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	failure(w, http.StatusNotFound, message, nil, nil)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	failure(w, http.StatusConflict, message, nil, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	failure(w, http.StatusTooManyRequests, message, nil, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	failure(w, http.StatusInternalServerError, message, nil, nil)
}

// ResponseServiceUnavailable returns 503 with a status payload, used by the health check.
func ResponseServiceUnavailable(w http.ResponseWriter, message string, data any) {
	failure(w, http.StatusServiceUnavailable, message, data, nil)
}
