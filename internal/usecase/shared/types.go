package shared

// Minimal view of a committed order, used by the write side to answer idempotent replays
type OrderRef struct {
	ID    int64
	Total int64
}
