package model

import (
	"time"

	"github.com/memegentino/backend/internal/entity"
)

func ConvertUser(user entity.User) User {
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
	}
}

func ConvertWorkspace(token entity.NotionToken) Workspace {
	return Workspace{
		BotID:         token.BotID,
		WorkspaceID:   token.WorkspaceID,
		WorkspaceName: token.WorkspaceName,
		WorkspaceIcon: token.WorkspaceIcon,
	}
}

func ConvertMeme(meme entity.Meme) Meme {
	m := Meme{
		ID:                 meme.ID,
		CreatedAt:          meme.CreatedAt.Format(time.RFC3339),
		CreatedBy:          meme.CreatedBy,
		CreatedWithBotID:   meme.CreatedWithBotID,
		SourceBlockID:      meme.SourceBlockID,
		SourceWorkspaceID:  meme.SourceWorkspaceID,
		MimeType:           meme.MimeType,
		TopText:            meme.TopText,
		BottomText:         meme.BottomText,
		Effects:            meme.Effects,
		AllowPublic:        meme.AllowPublic,
		AllowWorkspace:     meme.AllowWorkspace,
		AllowBySourceBlock: meme.AllowBySourceBlock,
	}

	if meme.WidthPx.Valid {
		m.WidthPx = int(meme.WidthPx.Int32)
	}
	if meme.HeightPx.Valid {
		m.HeightPx = int(meme.HeightPx.Int32)
	}

	return m
}
