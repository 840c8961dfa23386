// Package http provides http transport for the archive service
package http

import (
	"fmt"
	stdhttp "net/http"

	"skyvault/internal/core/datekey"
	"skyvault/internal/modkit/httpkit"
	"skyvault/internal/platform/logger"
	phttp "skyvault/internal/platform/net/http"
	"skyvault/internal/platform/net/http/bind"
	"skyvault/internal/services/archive/domain"
	svc "skyvault/internal/services/archive/service"
)

// Register mounts archive endpoints on the given router
// paths are a wire contract with the calendar UI, do not rename
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/get_image_counts", h.imageCounts)
	httpkit.PostForm[domain.SelectionInput](r, "/calculate_size", h.calculateSize)
	httpkit.PostRawFunc(r, "/download", h.download)
	httpkit.GetRawFunc(r, "/download_by_date", h.downloadByDate)
}

type handlers struct{ svc *svc.Service }

// @Summary Per-night image counts
// @Tags Archive
// @Produce json
// @Success 200 {array} domain.ImageCount "ok"
// @Router /get_image_counts [get]
func (h *handlers) imageCounts(r *stdhttp.Request) (any, error) {
	counts, err := h.svc.ImageCounts(r.Context())
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.ImageCount{}
	}
	return phttp.RawOK(counts), nil
}

// @Summary Estimate the size of a selection
// @Tags Archive
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} domain.SizeEstimate "ok"
// @Router /calculate_size [post]
func (h *handlers) calculateSize(r *stdhttp.Request, in domain.SelectionInput) (any, error) {
	est, err := h.svc.EstimateSize(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return phttp.RawOK(est), nil
}

// @Summary Download selected images as a zip
// @Tags Archive
// @Accept x-www-form-urlencoded
// @Produce application/zip
// @Router /download [post]
func (h *handlers) download(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseForm[domain.SelectionInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	selected, err := h.svc.Select(r.Context(), in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	attachment(w, "images.zip")
	if err := h.svc.StreamZip(r.Context(), w, selected); err != nil {
		// mid-stream failure, headers are gone, log and cut the stream
		logger.C(r.Context()).Error().Err(err).Msg("download stream failed")
	}
}

// @Summary Download all images of one night as a zip
// @Tags Archive
// @Produce application/zip
// @Param date query string true "night, YYYYMMDD"
// @Router /download_by_date [get]
func (h *handlers) downloadByDate(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	night := datekey.Key(r.URL.Query().Get("date"))
	images, err := h.svc.NightImages(r.Context(), night)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	attachment(w, fmt.Sprintf("%s_images.zip", night))
	if err := h.svc.StreamZip(r.Context(), w, images); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("night download stream failed")
	}
}

func attachment(w stdhttp.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
