package model

// ChatInfo is the persisted record of a group-like chat that at least one
// user has opted into relaying for. A record exists iff it has at least one
// member; memberships are only ever added, never removed.
type ChatInfo struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title,omitempty"`
	Members []int64 `json:"members"`
}
