package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped only on breaking envelope changes.
const envelopeVersion = 1

// Envelope is the stable JSON structure wrapping every API response.
type Envelope struct {
	V       int       `json:"v"`
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body, success or error, in the
// envelope. Registered as a huma transformer on the API config.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: len(status) > 0 && status[0] < '4',
		Data:    v,
	}, nil
}
