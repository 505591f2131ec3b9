package session

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
)

func encode(s *domain.Session) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: session=%s: %v", ErrEncode, s.ID, err)
	}
	return payload, nil
}

func decode(id string, payload []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("%w: session=%s: %v", ErrDecode, id, err)
	}
	return &s, nil
}
