package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Record is a row as returned by the API, with its fields left undecoded.
type Record struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"createdTime"`
	Fields      jsoniter.RawMessage `json:"fields"`
}

type ListResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// WriteRequest is the body of create and update calls.
type WriteRequest struct {
	Fields   any  `json:"fields"`
	Typecast bool `json:"typecast,omitempty"`
}
