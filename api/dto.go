/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal tables from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/stayline/availability-engine/store"
)

// UploadResponse describes a stored upload, including what the loader had to
// clean up on the way in.
type UploadResponse struct {
	Dataset store.DatasetInfo `json:"dataset"`
	// DroppedRows counts reservation rows removed for unparseable dates.
	DroppedRows int `json:"dropped_rows"`
	// SynthesizedApartments counts apartments auto-added to the mapping
	// because reservations referenced them.
	SynthesizedApartments int `json:"synthesized_apartments"`
}

// MatrixDTO is a labelled table: a header row and one labelled row per
// category.
type MatrixDTO struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
