package entity

type User struct {
	Base
	Name      string
	Email     string `gorm:"unique;not null"`
	AvatarURL string
	Role      string `gorm:"default:MEMBER"`
}

const (
	MemberRole = "MEMBER"
	GuestRole  = "GUEST"
)
