package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"` // Машиночитаемый код отказа
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondDenied пишет отказ бизнес-правила с кодом причины
func RespondDenied(w http.ResponseWriter, status int, reason, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// RespondRetryLater пишет 503 с заголовком Retry-After
func RespondRetryLater(w http.ResponseWriter, retryAfterSeconds int, message string) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	RespondError(w, http.StatusServiceUnavailable, message)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
