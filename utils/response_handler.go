package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"transdom/schemas"
)

// SendResponse writes data as the JSON body when present, otherwise a
// {"message"} envelope. A non-zero internalErrorCode replaces the message
// with the generic internal-error text so nothing internal leaks.
func SendResponse(w http.ResponseWriter, statusCode int, message string, data any, internalErrorCode int) {
	if internalErrorCode != 0 {
		writeJSON(w, statusCode, schemas.ApiResponse{
			Message: SendInternalError(internalErrorCode),
			Code:    internalErrorCode,
		})
		return
	}

	if message == "" && data == nil {
		w.WriteHeader(statusCode)
		return
	}

	if data == nil {
		writeJSON(w, statusCode, schemas.ApiResponse{Message: message})
		return
	}

	writeJSON(w, statusCode, data)
}

// SendError maps err onto its HTTP status. Client errors echo the error
// text; anything else is logged and answered with the internal error code.
func SendError(w http.ResponseWriter, r *http.Request, err error, internalErrorCode int) {
	status := StatusFor(err)
	if status < http.StatusInternalServerError {
		SendResponse(w, status, PublicMessage(err), nil, 0)
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", internalErrorCode,
		"error", err,
	)
	SendResponse(w, status, "", nil, internalErrorCode)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
