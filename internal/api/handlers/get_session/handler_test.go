package get_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	getSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/get_session"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type fakeUseCase struct {
	sessionID string
	err       error
}

func (f *fakeUseCase) Execute(_ context.Context, sessionID string) (*getSession.Response, error) {
	f.sessionID = sessionID
	if f.err != nil {
		return nil, f.err
	}
	s := &domain.Session{
		ID:        sessionID,
		CompanyID: "acme",
		Month:     domain.Month{Year: 2025, Month: time.March},
		LastError: "Не удалось загрузить доступное время. Попробуйте позже.",
	}
	return &getSession.Response{Session: s, View: form.DeriveSession(s, time.Now())}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions/{sessionId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/sessions/s-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-1", uc.sessionID)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03", body["month"])
	assert.Equal(t, "Не удалось загрузить доступное время. Попробуйте позже.", body["lastError"])
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeUseCase{err: getSession.ErrSessionNotFound}, "/api/v1/sessions/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSessionNotFound)

	rec = serve(&fakeUseCase{err: getSession.ErrInternal}, "/api/v1/sessions/s-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
