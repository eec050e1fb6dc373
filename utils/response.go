package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"leveluplife/models"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as {"message","name","status_code"}. Errors outside
// the domain taxonomy are logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	var domainErr *models.Error
	if !errors.As(err, &domainErr) {
		log.Error("unhandled error", zap.Error(err))
		domainErr = models.InternalServerError()
	}
	WriteJSON(w, domainErr.StatusCode, domainErr)
}
