package update_selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	updateSelection "github.com/m04kA/SMC-BookingWidget/internal/usecase/update_selection"
)

var errUnknownField = errors.New("unknown field")

// UpdateSelectionRequest HTTP request model.
// Отсутствующее поле не меняется; null сбрасывает значение.
//
//	{"serviceId": 7, "employeeId": null, "date": "2025-03-10", "slot": "09:00"}
type UpdateSelectionRequest map[string]json.RawMessage

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r UpdateSelectionRequest) ToUseCaseRequest(sessionID string) (*updateSelection.Request, error) {
	req := &updateSelection.Request{SessionID: sessionID}

	for key, raw := range r {
		var err error
		switch key {
		case "name":
			req.Name, err = decodeText(raw)
		case "phone":
			req.Phone, err = decodeText(raw)
		case "note":
			req.Note, err = decodeText(raw)
		case "serviceId":
			req.ServiceID, err = decodeID(raw)
		case "employeeId":
			req.EmployeeID, err = decodeID(raw)
		case "date":
			req.Date, err = decodeText(raw)
		case "slot":
			req.Slot, err = decodeText(raw)
		default:
			err = errUnknownField
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}

	return req, nil
}

// decodeText строка или null (null означает пустое значение)
func decodeText(raw json.RawMessage) (*string, error) {
	value := ""
	if isNull(raw) {
		return &value, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

// decodeID число или null (null означает сброс выбора)
func decodeID(raw json.RawMessage) (*updateSelection.IDChange, error) {
	if isNull(raw) {
		return &updateSelection.IDChange{}, nil
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	return &updateSelection.IDChange{Value: &id}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
