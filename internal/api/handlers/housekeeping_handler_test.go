// filepath: internal/api/handlers/housekeeping_handler_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gallerysaver/internal/models"
	"gallerysaver/internal/services"
	"gallerysaver/internal/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTriggerHousekeeping(t *testing.T) {
	mockHKService := new(mocks.MockHousekeepingService)
	h := NewHandlers(new(mocks.MockInfoService), nil, mockHKService, nil, nil)

	t.Run("Successful housekeeping run", func(t *testing.T) {
		report := &models.HousekeepingReport{EntriesFound: 3, EntriesDeleted: 3, Message: "Success"}
		mockHKService.On("TriggerHousekeeping", mock.Anything, false).Return(report, nil).Once()

		req := httptest.NewRequest("POST", "/api/housekeeping", nil)
		rr := httptest.NewRecorder()
		h.TriggerHousekeeping(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var result models.HousekeepingReport
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, 3, result.EntriesDeleted)
		assert.Equal(t, "Success", result.Message)
	})

	t.Run("Dry run", func(t *testing.T) {
		report := &models.HousekeepingReport{EntriesFound: 2, DryRun: true}
		mockHKService.On("TriggerHousekeeping", mock.Anything, true).Return(report, nil).Once()

		req := httptest.NewRequest("POST", "/api/housekeeping?dryrun=true", nil)
		rr := httptest.NewRecorder()
		h.TriggerHousekeeping(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Invalid dryrun", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/housekeeping?dryrun=maybe", nil)
		rr := httptest.NewRecorder()
		h.TriggerHousekeeping(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Direct storage model", func(t *testing.T) {
		mockHKService.On("TriggerHousekeeping", mock.Anything, false).Return(nil, services.ErrUnsupported).Once()

		req := httptest.NewRequest("POST", "/api/housekeeping", nil)
		rr := httptest.NewRecorder()
		h.TriggerHousekeeping(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Registry failure", func(t *testing.T) {
		mockHKService.On("TriggerHousekeeping", mock.Anything, false).Return(nil, errors.New("database is locked")).Once()

		req := httptest.NewRequest("POST", "/api/housekeeping", nil)
		rr := httptest.NewRecorder()
		h.TriggerHousekeeping(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	mockHKService.AssertExpectations(t)
}
