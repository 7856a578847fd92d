package model

type GetTemplateImagesRequest struct {
	WorkspaceID string `json:"workspace_id"`
	PageID      string `json:"page_id"`
}

type GetTemplateImagesResponse struct {
	// Images maps a stable cache key to a base64 data URL.
	Images map[string]string `json:"images"`
}
