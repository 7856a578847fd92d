package testutil

import (
	"context"
	"time"

	"github.com/memegentino/backend/config"
	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/pkg/authenticator"
	"github.com/memegentino/backend/pkg/logger"
	"github.com/memegentino/backend/pkg/session"
	"github.com/memegentino/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "token-secret",
				Expiration: time.Minute,
			},
			SuccessURL: "https://memegentino.example/",
			ErrorURL:   "https://memegentino.example/error",
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "memegentino_session",
		},
		Notion: config.NotionConfigs{
			ClientID:         "client-id",
			ClientSecret:     "client-secret",
			BaseURL:          "https://api.notion.example",
			CallbackURL:      "https://memegentino.example/api/auth/notion/callback",
			Version:          "2021-08-16",
			Timeout:          time.Minute,
			FileURLFreshness: 30 * time.Minute,
		},
		Meme: config.MemeConfigs{
			MaxSize: 2 * 1024 * 1024,
			MaxEdge: 2000,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.AccessToken.Secret))
	ctx = xcontext.WithSessionStore(ctx, session.NewCookieStore(cfg.Session.Name, []byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
