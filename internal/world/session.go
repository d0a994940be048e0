package world

import (
	"github.com/gofrs/uuid"
)

// SessionID identifies a connected client across reconnects within a
// single gameplay session. Backed by a v4 UUID rather than a pointer-
// derived ID so it survives being handed to persistence and telemetry
// without aliasing live server memory.
type SessionID uuid.UUID

// NewSessionID generates a random v4 session id.
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return SessionID{}, err
	}
	return SessionID(id), nil
}

func (s SessionID) String() string {
	return uuid.UUID(s).String()
}

func (s SessionID) MarshalText() ([]byte, error) {
	return uuid.UUID(s).MarshalText()
}

func (s *SessionID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(s).UnmarshalText(text)
}
