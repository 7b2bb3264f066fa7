// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Cumulocity, Docker, etc.).
package out

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/containerlens/containerlens/internal/domain"
)

// Inventory defines the contract for querying the remote object inventory.
// Raw objects are returned as parsed JSON documents; shaping them into domain
// types is the use case's job.
//
// Implementations return errors wrapping domain.ErrNotFound when an id does not
// resolve and domain.ErrUnavailable for transport or server failures. They never retry.
type Inventory interface {
	// FetchChildren returns the child additions of a device matching the query.
	FetchChildren(ctx context.Context, deviceID string, query domain.ChildQuery) ([]gjson.Result, error)

	// FetchWithParents returns a single object including its addition parent references.
	FetchWithParents(ctx context.Context, objectID string) (gjson.Result, error)
}
