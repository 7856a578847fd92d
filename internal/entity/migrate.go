package entity

import (
	"context"

	"github.com/memegentino/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&NotionToken{},
		&Meme{},
	)
}
