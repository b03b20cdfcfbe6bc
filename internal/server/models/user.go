// Package models holds the plain data records persisted by the blob store.
// All records carry JSON tags because the store keeps whole-list snapshots
// encoded as JSON.
package models

import "time"

// User is one registered account. The account number is generated, not
// chosen. Passwords are stored as entered; this is a demo-grade auth layer
// and is documented as such.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Mobile   string    `json:"mobile"`
	Password string    `json:"password"`
	Premium  bool      `json:"premium"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session is the currently signed-in user snapshot. It duplicates the user
// record on purpose: session reads must not depend on the users list being
// loadable.
type Session struct {
	User
	LoggedInAt time.Time `json:"logged_in_at"`
}
