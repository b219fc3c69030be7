package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkspaceService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkspaceService/pkg/logger"
)

type stubService struct {
	resp *models.BookingResponse
	err  error
}

func (s *stubService) GetByToken(_ context.Context, _ string, _ int64) (*models.BookingResponse, error) {
	return s.resp, s.err
}

func serve(svc BookingService, withUser bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{token}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bookings/tok", nil)
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&stubService{resp: &models.BookingResponse{ID: 1, Token: "tok"}}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"tok"`)

	assert.Equal(t, http.StatusUnauthorized, serve(&stubService{}, false).Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrBookingNotFound}, true).Code)
	assert.Equal(t, http.StatusForbidden, serve(&stubService{err: bookings.ErrAccessDenied}, true).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(&stubService{err: bookings.ErrTeamServiceUnavailable}, true).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: bookings.ErrInternal}, true).Code)
}

func TestHandle_MalformedTokenIsBadRequest(t *testing.T) {
	rec := serve(&stubService{err: fmt.Errorf("%w: malformed booking token", bookings.ErrInvalidInput)}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidToken)
}
