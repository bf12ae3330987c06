// resources.go implements MCP resource handlers for snapshot metadata.
//
// Resource URIs follow globfs://snapshots/{id}, where id is a full snapshot
// ID or a unique prefix, the same forms the CLI accepts.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

const snapshotURIPrefix = "globfs://snapshots/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a resource URI without a snapshot ID.
	ErrEmptyID = errors.New("empty snapshot ID")
)

// readSnapshot handles globfs://snapshots/{id} resource requests.
func (h *handlers) readSnapshot(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id, err := parseSnapshotURI(uri)
	if err != nil {
		return nil, err
	}

	st, err := h.svc.Store()
	var snap *store.Snapshot
	if err == nil {
		snap, err = st.Get(ctx, id)
	}

	log.Event("mcp:resource", "read").Snapshot(id).Write(err)

	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(snap.ToJSON())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseSnapshotURI extracts the snapshot ID from a resource URI.
func parseSnapshotURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, snapshotURIPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id := strings.TrimPrefix(uri, snapshotURIPrefix)
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}
