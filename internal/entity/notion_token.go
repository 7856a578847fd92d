package entity

// NotionToken is one workspace credential of one user. BotID identifies the
// installation and is the upsert key; a user connecting the same workspace
// again refreshes the row instead of duplicating it.
type NotionToken struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_user_bot;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	BotID         string `gorm:"uniqueIndex:idx_user_bot;not null"`
	WorkspaceID   string `gorm:"index;not null"`
	WorkspaceName string
	WorkspaceIcon string

	AccessToken string `gorm:"not null" json:"-"`
	TokenType   string

	// Owner is the provider's owner object kept verbatim. Its shape is
	// provider-defined and never queried, so it stays opaque text.
	Owner string `gorm:"type:text"`
}

func (NotionToken) TableName() string {
	return "notion_tokens"
}
