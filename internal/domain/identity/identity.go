// Package identity carries the resolved caller identity. Tokens are
// issued and parsed elsewhere; domain services only see this struct.
package identity

import "errors"

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrNoOrganization = errors.New("no organization")
)

type Identity struct {
	UserID int64
	OrgID  int64
	Role   string
}

// Check reports why the identity may not act. The two failure modes
// are distinct so the UI can render different messages.
func (id Identity) Check() error {
	if id.UserID == 0 {
		return ErrNotSignedIn
	}
	if id.OrgID == 0 {
		return ErrNoOrganization
	}
	return nil
}

func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}
