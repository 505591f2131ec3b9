package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

var tracer = otel.Tracer("smc.bookingwidget.integrations.scheduling")

// Client клиент REST API бэкенда записи
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента бэкенда записи
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMonthAvailability загружает снимок доступности компании за месяц.
// Даты дней нормализуются в календарные даты зоны loc; дни вне месяца
// и повторы отбрасываются, некорректные слоты пропускаются.
func (c *Client) GetMonthAvailability(ctx context.Context, companyID string, month domain.Month, loc *time.Location) (*domain.MonthSnapshot, error) {
	ctx, span := tracer.Start(ctx, "scheduling.get_month_availability")
	defer span.End()
	span.SetAttributes(
		attribute.String("company.id", companyID),
		attribute.String("availability.month", month.String()),
	)

	q := url.Values{}
	q.Set("month", month.String())
	path := fmt.Sprintf("/api/%s/availability?%s", url.PathEscape(companyID), q.Encode())

	var resp MonthAvailabilityResponse
	if err := c.doJSON(ctx, span, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	snapshot := c.toSnapshot(companyID, month, loc, &resp)
	span.SetAttributes(attribute.Int("availability.days", len(snapshot.Days)))
	return snapshot, nil
}

// CreateAppointment создает запись. Любой ответ 2xx считается успехом, тело не требуется.
func (c *Client) CreateAppointment(ctx context.Context, req *domain.AppointmentRequest) error {
	ctx, span := tracer.Start(ctx, "scheduling.create_appointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("company.id", req.CompanyID),
		attribute.Int64("service.id", req.ServiceID),
		attribute.Int64("employee.id", req.EmployeeID),
	)

	body := CreateAppointmentRequest{
		CompanyID:      req.CompanyID,
		ServiceID:      req.ServiceID,
		Name:           req.Name,
		WhatsappNumber: req.Phone,
		DateTime:       req.DateTime.UTC().Format(time.RFC3339),
		Note:           req.Note,
		EmployeeID:     req.EmployeeID,
	}
	path := fmt.Sprintf("/api/%s/appointments", url.PathEscape(req.CompanyID))

	return c.doJSON(ctx, span, http.MethodPost, path, body, nil)
}

func (c *Client) doJSON(ctx context.Context, span trace.Span, method, path string, body interface{}, out interface{}) error {
	err := c.do(ctx, span, method, path, body, out)
	if err != nil && !errors.Is(err, ErrCanceled) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, span trace.Span, method, path string, body interface{}, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		}
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		}
		return fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
		c.log.Warn("Scheduling backend non-2xx response: method=%s, path=%s, status=%d, message=%s",
			method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		if out != nil {
			return fmt.Errorf("%w: empty response body", ErrInvalidResponse)
		}
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// errorMessage извлекает текст ошибки: поле message или error в JSON, иначе начало тела
func errorMessage(status int, body []byte) string {
	var payload ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}

	msg := strings.TrimSpace(string(body))
	msg = truncateRunes(msg, maxErrorBodyLength)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return msg
}

// truncateRunes обрезает строку до n байт, не разрывая символ UTF-8
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (c *Client) toSnapshot(companyID string, month domain.Month, loc *time.Location, resp *MonthAvailabilityResponse) *domain.MonthSnapshot {
	snapshot := &domain.MonthSnapshot{
		CompanyID: companyID,
		Month:     month,
		Days:      make([]domain.DayAvailability, 0, len(resp.Days)),
		FetchedAt: time.Now().UTC(),
	}
	seen := make(map[types.Date]struct{}, len(resp.Days))

	for _, day := range resp.Days {
		date, err := types.ParseDateIn(day.Date, loc)
		if err != nil {
			c.log.Warn("GetMonthAvailability: company=%s, month=%s: skipping day with unparsable date %q", companyID, month, day.Date)
			continue
		}
		if !month.Contains(date) {
			c.log.Warn("GetMonthAvailability: company=%s, month=%s: skipping day %s outside of month", companyID, month, date)
			continue
		}
		if _, dup := seen[date]; dup {
			c.log.Warn("GetMonthAvailability: company=%s, month=%s: skipping duplicate day %s", companyID, month, date)
			continue
		}
		seen[date] = struct{}{}

		employees := make([]domain.EmployeeAvailability, 0, len(day.Employees))
		for _, emp := range day.Employees {
			employees = append(employees, c.toEmployee(companyID, date, emp))
		}
		snapshot.Days = append(snapshot.Days, domain.DayAvailability{Date: date, Employees: employees})
	}

	return snapshot
}

func (c *Client) toEmployee(companyID string, date types.Date, emp EmployeeAvailability) domain.EmployeeAvailability {
	services := make([]domain.Service, 0, len(emp.Services))
	for _, s := range emp.Services {
		services = append(services, domain.Service{ID: s.ID, Name: s.Name, DurationMinutes: s.DurationMinutes})
	}

	slots := make([]types.TimeString, 0, len(emp.Slots))
	for _, raw := range emp.Slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			c.log.Warn("GetMonthAvailability: company=%s, date=%s, employee=%d: skipping malformed slot %q", companyID, date, emp.ID, raw)
			continue
		}
		slots = append(slots, slot)
	}

	return domain.EmployeeAvailability{
		ID:       emp.ID,
		Name:     emp.Name,
		Lastname: emp.Lastname,
		Services: services,
		Slots:    slots,
	}
}
