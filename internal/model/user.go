package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User       User        `json:"user"`
	Workspaces []Workspace `json:"workspaces"`
}
