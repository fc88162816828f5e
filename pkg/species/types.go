package species

import (
	"context"
	"strconv"
)

// Species is a record of the remote collection.
// The JSON names follow the backend's field names.
type Species struct {
	// ID is assigned by the backend. Zero means the record was never persisted.
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
}

// Payload returns the create/update body for the species.
func (s Species) Payload() Payload {
	return Payload{Name: s.Name, Description: s.Description}
}

// Payload is the body sent on create and update. It never carries the id;
// updates address the record through the URL.
type Payload struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
}

// Client is the contract of the remote species collection.
type Client interface {
	// List returns the full collection. An empty slice is a valid result.
	List(ctx context.Context) ([]Species, error)
	// Create adds a new species built from the payload.
	Create(ctx context.Context, p Payload) error
	// Update replaces the species addressed by id. The id must already exist.
	Update(ctx context.Context, id int64, p Payload) error
	// Delete removes the species addressed by id.
	Delete(ctx context.Context, id int64) error
}

// ParseID parses a species identifier from its textual form.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	if id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
