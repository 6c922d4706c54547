package bot

// Guard answers whether a sender may run privileged commands. The allow-list
// is fixed at construction and never mutated, so lookups need no locking.
type Guard struct {
	adminIDs map[int64]struct{}
}

// NewGuard creates a guard from the configured admin ID list
func NewGuard(adminIDs []int64) *Guard {
	ids := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &Guard{adminIDs: ids}
}

// IsAuthorized reports whether the user is in the admin allow-list
func (g *Guard) IsAuthorized(userID int64) bool {
	_, ok := g.adminIDs[userID]
	return ok
}
