package model

// Workspace is the sanitized view of a stored credential. The access
// token itself never appears in any model.
type Workspace struct {
	BotID         string `json:"bot_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	WorkspaceIcon string `json:"workspace_icon"`
}

type GetWorkspacesRequest struct{}

type GetWorkspacesResponse struct {
	Workspaces []Workspace `json:"workspaces"`
}
