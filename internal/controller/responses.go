package controller

import (
	"encoding/json"
	"net/http"

	"socialdown/internal/models"
	"socialdown/pkg/logster"
)

type createResponse struct {
	Success    bool   `json:"success"`
	DownloadId string `json:"downloadId"`
}

type statusResponse struct {
	Success  bool                  `json:"success"`
	Download models.Download       `json:"download"`
	Files    []models.DownloadFile `json:"files"`
}

type listResponse struct {
	Success   bool              `json:"success"`
	Downloads []models.Download `json:"downloads"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, logger logster.Logger, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Errorf("fail to write response")
	}
}

func ErrorResponse(w http.ResponseWriter, logger logster.Logger, code int, msg string) {
	WriteJSON(w, logger, code, errorResponse{Success: false, Error: msg})
}
