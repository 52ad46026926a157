// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SexRole enumerates the profile's declared sex role.
type SexRole string

// Valid SexRole values.
const (
	SexRoleActive          SexRole = "active"
	SexRolePassive         SexRole = "passive"
	SexRoleVersatile       SexRole = "versatile"
	SexRoleVersatileTop    SexRole = "versatile-top"
	SexRoleVersatileBottom SexRole = "versatile-bottom"
	SexRoleSide            SexRole = "side"
)

// Gender enumerates the selectable gender identities.
type Gender string

// Valid Gender values.
const (
	GenderMale        Gender = "male"
	GenderCisMale     Gender = "cismale"
	GenderTransMale   Gender = "transmale"
	GenderFemale      Gender = "female"
	GenderCisFemale   Gender = "cisfemale"
	GenderTransFemale Gender = "transfemale"
	GenderNonBinary   Gender = "nonbinary"
)

var maleGenders = map[Gender]struct{}{
	GenderMale:      {},
	GenderCisMale:   {},
	GenderTransMale: {},
}

var femaleGenders = map[Gender]struct{}{
	GenderFemale:      {},
	GenderCisFemale:   {},
	GenderTransFemale: {},
}

// GendersConsistent reports whether a gender selection is internally
// consistent: male-spectrum and female-spectrum identities are mutually
// exclusive within one selection.
func GendersConsistent(selected []Gender) bool {
	var hasMale, hasFemale bool
	for _, g := range selected {
		if _, ok := maleGenders[g]; ok {
			hasMale = true
		}
		if _, ok := femaleGenders[g]; ok {
			hasFemale = true
		}
	}

	return !(hasMale && hasFemale)
}

// Profile holds the dating-profile data associated with a user account.
type Profile struct {
	ID        uuid.UUID // The unique identifier for the profile.
	UserID    uuid.UUID // Links the profile to the User it belongs to.
	Name      string    // Display name, up to 50 characters.
	Age       int       // Age in years, 18 to 99.
	Bio       string    // Free-form biography, up to 1000 characters.
	SexRole   SexRole   // Declared sex role.
	Genders   []Gender  // Selected gender identities. Must satisfy GendersConsistent.
	Pronouns  []string  // Selected pronoun sets.
	Pictures  []Picture // Pictures in display order.
	Albums    []Album   // Albums in display order.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Picture is a single profile picture, optionally grouped into an album.
type Picture struct {
	ID      uuid.UUID  `json:"id"`
	AlbumID *uuid.UUID `json:"albumId,omitempty"` // Album the picture belongs to, nil for the main roll.
	URL     string     `json:"url"`
	Order   int        `json:"order"` // Position within the display ordering.
}

// Album groups pictures under a profile.
type Album struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profileId"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
}

// MainPicture returns the first picture in display order, or nil when the
// profile has no pictures yet.
func (p *Profile) MainPicture() *Picture {
	if len(p.Pictures) == 0 {
		return nil
	}

	return &p.Pictures[0]
}
