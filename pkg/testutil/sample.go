package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/repository"
)

// SampleUser creates a user with randomized fields, overwritten by any
// non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) entity.User {
	sample := &entity.User{
		Base:  entity.Base{ID: uuid.NewString()},
		Name:  uuid.NewString(),
		Email: uuid.NewString() + "@example.com",
		Role:  entity.MemberRole,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleNotionToken(ctx context.Context, init *entity.NotionToken) entity.NotionToken {
	sample := &entity.NotionToken{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        uuid.NewString(),
		BotID:         uuid.NewString(),
		WorkspaceID:   uuid.NewString(),
		WorkspaceName: "Sample Workspace",
		AccessToken:   "secret_" + uuid.NewString(),
		TokenType:     "bearer",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewNotionTokenRepository().Upsert(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleMeme(ctx context.Context, init *entity.Meme) entity.Meme {
	sample := &entity.Meme{
		Base:              entity.Base{ID: uuid.NewString()},
		CreatedBy:         uuid.NewString(),
		CreatedWithBotID:  uuid.NewString(),
		SourceBlockID:     uuid.NewString(),
		SourceWorkspaceID: uuid.NewString(),
		MimeType:          "image/png",
		Data:              []byte{0x89, 0x50, 0x4e, 0x47},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewMemeRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
