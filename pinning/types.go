package pinning

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PinResults is the response body of a pin listing: a total count plus one
// page of pin status records.
type PinResults struct {
	Count   int         `json:"count"`
	Results []PinStatus `json:"results"`
}

// PinStatus is one pin record as tracked by the pinning service.
type PinStatus struct {
	// RequestID is the service-assigned identifier for the pin request.
	RequestID string `json:"requestid"`

	// Status is the pinning lifecycle state: queued, pinning, pinned or failed.
	Status string `json:"status"`

	// Created is when the pin request was registered.
	Created time.Time `json:"created"`

	// Pin is the content being pinned.
	Pin Pin `json:"pin"`

	// Delegates are multiaddrs the service accepts the content on.
	Delegates []string `json:"delegates"`

	// Info carries optional service-specific details.
	Info map[string]string `json:"info,omitempty"`
}

// Pin identifies content to be pinned and its caller-supplied metadata.
type Pin struct {
	CID     string            `json:"cid"`
	Name    string            `json:"name,omitempty"`
	Origins []string          `json:"origins,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// ListOptions filters a pin listing. The zero value lists everything the
// service returns by default.
type ListOptions struct {
	// CIDs restricts results to these content identifiers.
	CIDs []string

	// Name restricts results to pins with this name.
	Name string

	// Statuses restricts results to pins in these lifecycle states.
	Statuses []string

	// Before / After bound the pin creation time.
	Before time.Time
	After  time.Time

	// Limit caps the number of records returned. 0 means service default.
	Limit int
}

// query encodes the options as pinning-service query parameters.
func (o ListOptions) query() url.Values {
	q := url.Values{}
	if len(o.CIDs) > 0 {
		q.Set("cid", strings.Join(o.CIDs, ","))
	}
	if o.Name != "" {
		q.Set("name", o.Name)
	}
	if len(o.Statuses) > 0 {
		q.Set("status", strings.Join(o.Statuses, ","))
	}
	if !o.Before.IsZero() {
		q.Set("before", o.Before.UTC().Format(time.RFC3339))
	}
	if !o.After.IsZero() {
		q.Set("after", o.After.UTC().Format(time.RFC3339))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}
