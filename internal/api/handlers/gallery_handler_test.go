// filepath: internal/api/handlers/gallery_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gallerysaver/internal/models"
	"gallerysaver/internal/services/auth"
	"gallerysaver/internal/services/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupGalleryTestAPI mounts the gallery handlers on a router without auth.
func setupGalleryTestAPI(t *testing.T) (*mux.Router, *mocks.MockGalleryService) {
	t.Helper()
	mockGallery := new(mocks.MockGalleryService)
	h := NewHandlers(new(mocks.MockInfoService), mockGallery, nil, nil, nil)

	r := mux.NewRouter()
	r.HandleFunc("/api/gallery/image", h.SaveImage).Methods("POST")
	r.HandleFunc("/api/gallery/file", h.SaveFile).Methods("POST")
	r.HandleFunc("/api/method/{name}", h.InvokeMethod).Methods("POST")
	return r, mockGallery
}

func strPtr(s string) *string { return &s }

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestSaveImageHandler(t *testing.T) {
	r, mockGallery := setupGalleryTestAPI(t)

	t.Run("Successful save", func(t *testing.T) {
		quality := 80
		want := models.SaveImageArgs{ImageBytes: []byte{0x89, 'P', 'N', 'G'}, Quality: &quality, Name: strPtr("shot")}
		uri := "content://media/external/images/media/01HX"
		mockGallery.On("SaveImage", mock.Anything, "anonymous", want).Return(models.Succeeded(&uri)).Once()

		body, _ := json.Marshal(want)
		req := httptest.NewRequest("POST", "/api/gallery/image", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		result := decodeResult(t, rr)
		assert.Equal(t, true, result["isSuccess"])
		assert.Equal(t, uri, result["filePath"])
		assert.Contains(t, result, "errorMessage")
		assert.Nil(t, result["errorMessage"])
		mockGallery.AssertExpectations(t)
	})

	t.Run("Failure is reported in the result", func(t *testing.T) {
		mockGallery.On("SaveImage", mock.Anything, "anonymous", models.SaveImageArgs{}).Return(models.Failed("parameters error")).Once()

		req := httptest.NewRequest("POST", "/api/gallery/image", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		result := decodeResult(t, rr)
		assert.Equal(t, false, result["isSuccess"])
		assert.Nil(t, result["filePath"])
		assert.Equal(t, "parameters error", result["errorMessage"])
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/gallery/image", strings.NewReader(`{"imageBytes":`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Quality out of range", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/gallery/image", strings.NewReader(`{"imageBytes":"AQ==","quality":101}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockGallery.AssertNotCalled(t, "SaveImage", mock.Anything, mock.Anything, mock.MatchedBy(func(a models.SaveImageArgs) bool {
			return a.Quality != nil && *a.Quality == 101
		}))
	})
}

func TestSaveFileHandler(t *testing.T) {
	r, mockGallery := setupGalleryTestAPI(t)

	isImage := false
	want := models.SaveFileArgs{File: strPtr("/data/clip.mp4"), IsImage: &isImage}
	mockGallery.On("SaveFile", mock.Anything, "anonymous", want).Return(models.Failed("")).Once()

	req := httptest.NewRequest("POST", "/api/gallery/file", strings.NewReader(`{"file":"/data/clip.mp4","isImage":false}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	result := decodeResult(t, rr)
	assert.Equal(t, false, result["isSuccess"])
	assert.Equal(t, "", result["errorMessage"])
	mockGallery.AssertExpectations(t)
}

func TestInvokeMethod(t *testing.T) {
	r, mockGallery := setupGalleryTestAPI(t)

	t.Run("saveFileToGallery", func(t *testing.T) {
		want := models.SaveFileArgs{File: strPtr("/missing.jpg")}
		mockGallery.On("SaveFile", mock.Anything, "anonymous", want).Return(models.Failed("/missing.jpg does not exist")).Once()

		req := httptest.NewRequest("POST", "/api/method/saveFileToGallery", strings.NewReader(`{"file":"/missing.jpg"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "/missing.jpg does not exist", decodeResult(t, rr)["errorMessage"])
	})

	t.Run("saveImageToGallery with empty body", func(t *testing.T) {
		mockGallery.On("SaveImage", mock.Anything, "anonymous", models.SaveImageArgs{}).Return(models.Failed("parameters error")).Once()

		req := httptest.NewRequest("POST", "/api/method/saveImageToGallery", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "parameters error", decodeResult(t, rr)["errorMessage"])
	})

	t.Run("Unknown method", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/method/deleteFromGallery", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotImplemented, rr.Code)
		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
		assert.Equal(t, "not implemented", errResp.Error)
	})

	mockGallery.AssertExpectations(t)
}

func TestSaveImageHandler_Actor(t *testing.T) {
	mockGallery := new(mocks.MockGalleryService)
	h := NewHandlers(new(mocks.MockInfoService), mockGallery, nil, nil, nil)
	mockGallery.On("SaveImage", mock.Anything, "camera-app", mock.Anything).Return(models.Failed("parameters error")).Once()

	req := httptest.NewRequest("POST", "/api/gallery/image", strings.NewReader(`{}`))
	req = req.WithContext(auth.WithActor(req.Context(), "camera-app"))
	rr := httptest.NewRecorder()
	h.SaveImage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockGallery.AssertExpectations(t)
}
