package create_session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	startSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/start_session"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type fakeUseCase struct {
	got *startSession.InitialConfig
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, cfg startSession.InitialConfig) (*startSession.Response, error) {
	f.got = &cfg
	if f.err != nil {
		return nil, f.err
	}
	s := &domain.Session{
		ID:        "s-1",
		CompanyID: "acme",
		Timezone:  "UTC",
		Month:     domain.Month{Year: 2025, Month: time.March},
		Selection: domain.Selection{ServiceID: cfg.ServiceID},
	}
	return &startSession.Response{Session: s, View: form.DeriveSession(s, time.Now())}, nil
}

func serve(t *testing.T, uc *fakeUseCase, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, "/api/v1/sessions",
		`{"companyId":"acme","serviceId":7,"timezone":"Europe/Berlin","month":"2025-04"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "acme", uc.got.CompanyID)
	assert.Equal(t, int64(7), *uc.got.ServiceID)
	assert.Equal(t, "Europe/Berlin", uc.got.Timezone)
	assert.Equal(t, domain.Month{Year: 2025, Month: time.April}, *uc.got.Month)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s-1", body["id"])
	assert.Equal(t, float64(7), body["selection"].(map[string]interface{})["serviceId"])
}

func TestHandle_EmptyBodyAndQueryService(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, "/api/v1/sessions?serviceId=12", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(12), *uc.got.ServiceID)
	assert.Nil(t, uc.got.Month)
}

func TestHandle_BodyServiceWinsOverQuery(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, "/api/v1/sessions?serviceId=12", `{"serviceId":3}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), *uc.got.ServiceID)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		body   string
		err    error
		status int
		msg    string
	}{
		{name: "bad json", target: "/api/v1/sessions", body: `{"companyId":`, status: http.StatusBadRequest, msg: msgInvalidRequestBody},
		{name: "unknown field", target: "/api/v1/sessions", body: `{"userId":1}`, status: http.StatusBadRequest, msg: msgInvalidRequestBody},
		{name: "bad month", target: "/api/v1/sessions", body: `{"month":"03.2025"}`, status: http.StatusBadRequest, msg: msgInvalidMonth},
		{name: "bad query service", target: "/api/v1/sessions?serviceId=abc", status: http.StatusBadRequest, msg: msgInvalidServiceID},
		{name: "timezone", target: "/api/v1/sessions", err: fmt.Errorf("%w: Mars/Base", startSession.ErrUnknownTimezone), status: http.StatusBadRequest, msg: msgUnknownTimezone},
		{name: "past month", target: "/api/v1/sessions", err: startSession.ErrMonthInPast, status: http.StatusBadRequest, msg: msgMonthInPast},
		{name: "invalid input", target: "/api/v1/sessions", err: startSession.ErrInvalidInput, status: http.StatusBadRequest, msg: msgInvalidInput},
		{name: "internal", target: "/api/v1/sessions", err: startSession.ErrInternal, status: http.StatusInternalServerError, msg: "внутренняя ошибка сервера"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tc.err}, tc.target, tc.body)

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
