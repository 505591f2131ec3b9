package submit_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	submitAppointment "github.com/m04kA/SMC-BookingWidget/internal/usecase/submit_appointment"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type fakeUseCase struct {
	got *submitAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitAppointment.Request) (*submitAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	booking := &domain.BookingConfirmation{
		ServiceID:  7,
		EmployeeID: 1,
		DateTime:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		BookedAt:   time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
	}
	s := &domain.Session{
		ID:          req.SessionID,
		CompanyID:   "acme",
		Timezone:    "Europe/Berlin",
		Month:       domain.Month{Year: 2025, Month: time.March},
		LastBooking: booking,
	}
	return &submitAppointment.Response{Session: s, View: form.DeriveSession(s, time.Now()), Booking: booking}, nil
}

func serve(uc *fakeUseCase) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions/{sessionId}/appointments", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s-1/appointments", nil))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "s-1", uc.got.SessionID)

	var body struct {
		Booking struct {
			ServiceID int64  `json:"serviceId"`
			DateTime  string `json:"dateTime"`
		} `json:"booking"`
		Session struct {
			ID          string                 `json:"id"`
			LastBooking map[string]interface{} `json:"lastBooking"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Booking.ServiceID)
	assert.Equal(t, "2025-03-10T10:00:00+01:00", body.Booking.DateTime)
	assert.Equal(t, "s-1", body.Session.ID)
	assert.NotEmpty(t, body.Session.LastBooking)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{
			name:   "backend",
			err:    &submitAppointment.BackendError{Message: "Время уже занято"},
			status: http.StatusBadGateway,
			msg:    "Время уже занято",
		},
		{
			name:   "wrapped backend",
			err:    fmt.Errorf("submit: %w", &submitAppointment.BackendError{Message: "Сервис недоступен"}),
			status: http.StatusBadGateway,
			msg:    "Сервис недоступен",
		},
		{name: "not found", err: submitAppointment.ErrSessionNotFound, status: http.StatusNotFound, msg: msgSessionNotFound},
		{name: "in flight", err: submitAppointment.ErrSubmissionInFlight, status: http.StatusConflict, msg: msgSubmissionInFlight},
		{name: "incomplete", err: fmt.Errorf("%w: missing slot", submitAppointment.ErrIncompleteSelection), status: http.StatusBadRequest, msg: msgIncompleteSelection},
		{name: "invalid", err: submitAppointment.ErrInvalidInput, status: http.StatusBadRequest, msg: msgInvalidInput},
		{name: "internal", err: submitAppointment.ErrInternal, status: http.StatusInternalServerError, msg: "внутренняя ошибка сервера"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.err})

			assert.Equal(t, tc.status, rec.Code)
			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, tc.msg, body.Message)
		})
	}
}
