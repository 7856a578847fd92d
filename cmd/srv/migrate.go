package main

import (
	"context"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := xcontext.WithDB(context.Background(), s.db)
	return entity.MigrateTable(ctx)
}
