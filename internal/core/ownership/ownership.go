// Package ownership is the single place where "actor may mutate resource"
// is decided: a post or comment may be edited or deleted only by its
// author. The owner is always the one re-read from the store, never a
// client-submitted value.
package ownership

import "plume/internal/core/domain"

// Authorize returns nil when actorID owns the resource, domain.ErrForbidden
// otherwise. Callers translate ErrForbidden into a redirect to the
// resource's read-only view.
func Authorize(actorID, ownerID string) error {
	if actorID == "" {
		return domain.ErrUnauthenticated
	}
	if actorID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
