package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"socialdown/internal/Service"
	"socialdown/internal/models"
	"socialdown/pkg/logster"
)

type HandlerInterface interface {
	CreateDownload(w http.ResponseWriter, r *http.Request)
	GetDownload(w http.ResponseWriter, r *http.Request)
	ListDownloads(w http.ResponseWriter, r *http.Request)
}

type HandlerObj struct {
	Service  Service.ServiceInterface
	Logger   logster.Logger
	validate *validator.Validate
}

func NewHandlers(service Service.ServiceInterface, logger logster.Logger) *HandlerObj {
	return &HandlerObj{
		Service:  service,
		Logger:   logger.WithField("Layer", "Handlers"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *HandlerObj) CreateDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateDownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.WithError(err).Infof("fail to decode request body")
		ErrorResponse(w, h.Logger, http.StatusBadRequest, "Invalid download request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.Logger.WithError(err).Infof("download request failed validation")
		ErrorResponse(w, h.Logger, http.StatusBadRequest, "Invalid download request")
		return
	}

	download, err := h.Service.CreateDownload(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			ErrorResponse(w, h.Logger, http.StatusBadRequest, "Invalid download request")
			return
		}
		h.Logger.WithError(err).Errorf("fail to create download")
		ErrorResponse(w, h.Logger, http.StatusInternalServerError, "Server error")
		return
	}

	h.Logger.Infof("download created with Id: %s", download.Id)
	WriteJSON(w, h.Logger, http.StatusOK, createResponse{Success: true, DownloadId: download.Id})
}

func (h *HandlerObj) GetDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	downloadId := chi.URLParam(r, "download_id")

	snapshot, err := h.Service.GetStatus(ctx, downloadId)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			ErrorResponse(w, h.Logger, http.StatusNotFound, "Download not found")
			return
		}
		h.Logger.WithError(err).Errorf("fail to get download status")
		ErrorResponse(w, h.Logger, http.StatusInternalServerError, "Server error")
		return
	}

	WriteJSON(w, h.Logger, http.StatusOK, statusResponse{
		Success:  true,
		Download: snapshot.Download,
		Files:    snapshot.Files,
	})
}

func (h *HandlerObj) ListDownloads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	downloads, err := h.Service.ListDownloads(ctx)
	if err != nil {
		h.Logger.WithError(err).Errorf("fail to list downloads")
		ErrorResponse(w, h.Logger, http.StatusInternalServerError, "Server error")
		return
	}

	WriteJSON(w, h.Logger, http.StatusOK, listResponse{Success: true, Downloads: downloads})
}
