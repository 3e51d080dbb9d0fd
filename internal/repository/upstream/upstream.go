// Package upstream implements the domain repositories on top of the HRMS
// REST API.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

// listKeys are the keys paginated list responses nest their items under.
var listKeys = []string{"items", "results", "rows", "records", "data"}

// unwrapList returns the item array of a list response. Bare arrays pass
// through; objects are searched for listKeys plus extra.
func unwrapList(data []byte, extra ...string) []byte {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return data
	}
	for _, k := range append(extra, listKeys...) {
		if v, ok := raw[k]; ok {
			return v
		}
	}
	return data
}

// unwrapOne returns the record of a single-item response nested under one of keys.
func unwrapOne(data []byte, keys ...string) []byte {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) != 1 {
		return data
	}
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v
		}
	}
	return data
}

// segment guards an identifier used as a path segment.
func segment(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/\\?#%") {
		return "", fmt.Errorf("%w: %q", resource.ErrInvalidID, id)
	}
	return id, nil
}

func emptyResponse(entity string) error {
	return &payload.ShapeError{Entity: entity, Reason: "empty response body"}
}

// notFound tags a 404 from upstream with the domain's not-found error.
func notFound(err, domainErr error) error {
	var apiErr *apiclient.APIError
	if domainErr != nil && errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domainErr, err)
	}
	return err
}
