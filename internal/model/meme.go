package model

type Meme struct {
	ID                 string `json:"id"`
	CreatedAt          string `json:"created_at"`
	CreatedBy          string `json:"created_by"`
	CreatedWithBotID   string `json:"created_with_bot_id"`
	SourceBlockID      string `json:"source_block_id"`
	SourceWorkspaceID  string `json:"source_workspace_id"`
	MimeType           string `json:"mime_type"`
	WidthPx            int    `json:"width_px"`
	HeightPx           int    `json:"height_px"`
	TopText            string `json:"top_text"`
	BottomText         string `json:"bottom_text"`
	Effects            string `json:"effects"`
	AllowPublic        bool   `json:"allow_public"`
	AllowWorkspace     bool   `json:"allow_workspace"`
	AllowBySourceBlock bool   `json:"allow_by_source_block"`
}

type CreateMemeRequest struct {
	CreatedWithBotID   string `json:"created_with_bot_id"`
	SourceBlockID      string `json:"source_block_id"`
	MimeType           string `json:"mime_type"`
	DataBase64         string `json:"data_base64"`
	TopText            string `json:"top_text"`
	BottomText         string `json:"bottom_text"`
	Effects            string `json:"effects"`
	AllowPublic        bool   `json:"allow_public"`
	AllowWorkspace     bool   `json:"allow_workspace"`
	AllowBySourceBlock bool   `json:"allow_by_source_block"`
}

type CreateMemeResponse struct {
	Meme Meme `json:"meme"`
}

type UpdateMemeRequest struct {
	ID                 string `json:"id"`
	AllowPublic        *bool  `json:"allow_public"`
	AllowWorkspace     *bool  `json:"allow_workspace"`
	AllowBySourceBlock *bool  `json:"allow_by_source_block"`
}

type UpdateMemeResponse struct{}

type DeleteMemeRequest struct {
	ID string `json:"id"`
}

type DeleteMemeResponse struct{}

type GetMemeRequest struct {
	ID string `json:"id"`
}

type GetMemeResponse struct {
	Meme Meme `json:"meme"`
}

type GetMemesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMemesResponse struct {
	Memes []Meme `json:"memes"`
}
