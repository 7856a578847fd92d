package entity

import "database/sql"

// Meme is a derived image artifact. SourceWorkspaceID is copied from the
// credential at creation time and never re-resolved, so access rules
// survive credential revocation and rotation.
type Meme struct {
	Base

	CreatedBy string `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:CreatedBy"`

	CreatedWithBotID  string `gorm:"not null"`
	SourceBlockID     string `gorm:"not null"`
	SourceWorkspaceID string `gorm:"not null"`

	MimeType string `gorm:"not null"`
	Data     []byte `gorm:"not null" json:"-"`
	WidthPx  sql.NullInt32
	HeightPx sql.NullInt32

	TopText    string
	BottomText string

	// Effects is an opaque serialized layout/effect description owned by
	// the compositing client.
	Effects string `gorm:"type:text"`

	AllowPublic    bool `gorm:"default:false"`
	AllowWorkspace bool `gorm:"default:false"`

	// AllowBySourceBlock is stored and surfaced but not consulted by the
	// visibility gate. See the visibility gate for the reason it stays
	// unevaluated.
	AllowBySourceBlock bool `gorm:"default:false"`
}
