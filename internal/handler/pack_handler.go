package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/internal/service"
)

type PackHandler struct {
	service *service.PackService
}

func NewPackHandler(service *service.PackService) *PackHandler {
	return &PackHandler{service: service}
}

func (h *PackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	packs, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PackListResponse{Packs: packs, Total: total})
}

func (h *PackHandler) Get(w http.ResponseWriter, r *http.Request) {
	pack, err := h.service.Get(r.Context(), chi.URLParam(r, "pack"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PackResponse{Pack: pack})
}
