package model

import "time"

// Session is the ephemeral record of an authenticated identity. Role is
// captured at authentication time and is not re-resolved against the user
// store on later checks; a role change does not retroactively alter an
// active session.
type Session struct {
	Token     string
	Email     string
	Role      Role
	CreatedAt time.Time
}
