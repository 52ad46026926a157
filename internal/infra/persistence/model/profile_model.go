package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. One profile per user.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	Name      string    `gorm:"type:varchar(50)"`
	Age       int
	Bio       string `gorm:"type:varchar(1000)"`
	SexRole   string `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Genders  []GenderModel  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Pronouns []PronounModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Pictures []PictureModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Albums   []AlbumModel   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// GenderModel mirrors the 'profile_genders' table.
type GenderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(20);not null"`
}

// TableName explicitly sets the table name for GORM.
func (GenderModel) TableName() string {
	return "profile_genders"
}

// PronounModel mirrors the 'profile_pronouns' table.
type PronounModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(30);not null"`
}

// TableName explicitly sets the table name for GORM.
func (PronounModel) TableName() string {
	return "profile_pronouns"
}

// PictureModel mirrors the 'pictures' table. Position drives display order.
type PictureModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AlbumID   *uuid.UUID `gorm:"type:uuid"`
	URL       string     `gorm:"type:text;not null"`
	Position  int        `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (PictureModel) TableName() string {
	return "pictures"
}

// AlbumModel mirrors the 'albums' table. Position drives display order.
type AlbumModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (AlbumModel) TableName() string {
	return "albums"
}
