// filepath: internal/api/handlers/gallery_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/models"
	"gallerysaver/internal/services"
	"gallerysaver/internal/services/auth"

	"github.com/gorilla/mux"
)

// Method names accepted on the method channel.
const (
	MethodSaveImage = "saveImageToGallery"
	MethodSaveFile  = "saveFileToGallery"
)

// @Summary Save an image to the gallery
// @Description Stores base64 encoded image bytes in the Pictures collection. Failures are reported inside the result with isSuccess=false.
// @Tags Gallery
// @Accept   json
// @Produce  json
// @Param   args  body  models.SaveImageArgs  true  "Image arguments"
// @Success 200 {object} models.SaveResult
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Security BasicAuth
// @Router /gallery/image [post]
func (h *Handlers) SaveImage(w http.ResponseWriter, r *http.Request) {
	var args models.SaveImageArgs
	if !h.decodeArgs(w, r, &args) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.Gallery.SaveImage(r.Context(), auth.ActorFromContext(r.Context()), args))
}

// @Summary Save a file to the gallery
// @Description Copies an existing file into the Pictures collection, or into Movies when isImage is false.
// @Tags Gallery
// @Accept   json
// @Produce  json
// @Param   args  body  models.SaveFileArgs  true  "File arguments"
// @Success 200 {object} models.SaveResult
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Security BasicAuth
// @Router /gallery/file [post]
func (h *Handlers) SaveFile(w http.ResponseWriter, r *http.Request) {
	var args models.SaveFileArgs
	if !h.decodeArgs(w, r, &args) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.Gallery.SaveFile(r.Context(), auth.ActorFromContext(r.Context()), args))
}

// @Summary Invoke a method by name
// @Description Dispatches saveImageToGallery or saveFileToGallery with the JSON arguments in the body. Any other name answers 501.
// @Tags Gallery
// @Accept   json
// @Produce  json
// @Param   name  path  string  true  "Method name"
// @Success 200 {object} models.SaveResult
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 501 {object} ErrorResponse "not implemented"
// @Security BearerAuth
// @Security BasicAuth
// @Router /method/{name} [post]
func (h *Handlers) InvokeMethod(w http.ResponseWriter, r *http.Request) {
	switch name := mux.Vars(r)["name"]; name {
	case MethodSaveImage:
		h.SaveImage(w, r)
	case MethodSaveFile:
		h.SaveFile(w, r)
	default:
		logging.Log.Debugf("InvokeMethod: unknown method %q", name)
		respondWithError(w, http.StatusNotImplemented, services.ErrNotImplemented.Error())
	}
}

// decodeArgs reads and validates the JSON body into dst. An empty body
// leaves dst at its zero value.
func (h *Handlers) decodeArgs(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		logging.Log.Warnf("Request validation failed: %v", err)
		respondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
