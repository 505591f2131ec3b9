package end_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	endSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/end_session"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type fakeUseCase struct {
	ended []string
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, sessionID string) error {
	f.ended = append(f.ended, sessionID)
	return f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions/{sessionId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/sessions/s-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []string{"s-1"}, uc.ended)

	rec = serve(&fakeUseCase{err: endSession.ErrSessionNotFound}, "/api/v1/sessions/gone")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeUseCase{err: endSession.ErrInternal}, "/api/v1/sessions/s-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
