package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/adapter/rest/middleware"
	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/listing/usecase"
)

// multipartMemoryLimit bounds in-memory buffering of an upload request; a
// full batch of maximum-size images fits with headroom.
const multipartMemoryLimit = 64 << 20

type ListingHandler struct {
	listings *usecase.ListingUsecase
	photos   *usecase.PhotoUsecase
	logger   *zap.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, photos *usecase.PhotoUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, photos: photos, logger: logger}
}

func (h *ListingHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	views, err := h.listings.ListListings(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ListingHandler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	filter := usecase.BuildFilter(r.URL.Query())
	views, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var fields domain.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.listings.CreateListing(r.Context(), actor, &fields)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	var fields domain.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.listings.UpdateListing(r.Context(), actor, id, &fields)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *ListingHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.listings.DeleteListing(r.Context(), actor, id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Property deleted")
}

// HandleUploadImages accepts a multipart batch under the "images" field and
// returns the stored URL and caption for each file, preserving input order.
func (h *ListingHandler) HandleUploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		respondMessage(w, http.StatusBadRequest, "No images uploaded")
		return
	}

	files := make([]usecase.ImageUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		// Reject on the declared size before buffering the file.
		if fh.Size > usecase.MaxImageSize {
			respondMessage(w, http.StatusBadRequest, "file is too large, maximum size is 5MB: "+fh.Filename)
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Failed to read uploaded file: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Failed to read uploaded file: "+fh.Filename)
			return
		}
		files = append(files, usecase.ImageUpload{FileName: fh.Filename, Data: data})
	}

	images, err := h.photos.UploadImages(r.Context(), files)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}
