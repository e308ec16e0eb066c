package user

import (
	"fmt"

	"libraryapi/internal/apperr"
)

// ErrNotFound is returned for unknown user ids.
var ErrNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

// Profile is the public face of a user.
type Profile struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	NormalizedFullName string `json:"-"`
	Visible            bool   `json:"visible"`
}

// View is a profile as seen by another user. FullName is blank when the
// profile is hidden from the viewer.
type View struct {
	ID       string `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Visible  bool   `json:"visible"`
}

func (p Profile) viewBy(viewerID string) View {
	v := View{ID: p.ID, Visible: p.Visible}
	if p.Visible || p.ID == viewerID {
		v.FullName = p.FullName
	}
	return v
}
