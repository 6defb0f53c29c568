package engine

import "stairwell/internal/physics"

// WorldAccess provides components with access to world-level queries
// without creating circular import dependencies.
type WorldAccess interface {
	// CollidersNear returns the bounds of every static collider that overlaps area.
	CollidersNear(area physics.AABB) []physics.AABB
}
