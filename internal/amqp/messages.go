package amqp

import (
	"encoding/json"
	"time"
)

// AllocationRequest asks the worker to (re)compute one client's
// allocation. It carries only the id and the profile version the
// requester saw; the worker re-reads the full profile from the store.
type AllocationRequest struct {
	ClientID  string    `json:"client_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAllocationRequest creates a request message for one client.
func NewAllocationRequest(clientID string, version int64) *AllocationRequest {
	return &AllocationRequest{
		ClientID:  clientID,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AllocationRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AllocationRequestFromJSON parses a request from JSON bytes.
func AllocationRequestFromJSON(data []byte) (*AllocationRequest, error) {
	var msg AllocationRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
