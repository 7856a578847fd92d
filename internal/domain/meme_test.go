package domain

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/testutil"
	"github.com/memegentino/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newMemeDomainTest() MemeDomain {
	return NewMemeDomain(repository.NewMemeRepository(), repository.NewNotionTokenRepository())
}

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func Test_memeDomain_Create_copiesWorkspaceFromCredential(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	token := testutil.SampleNotionToken(ctx, &entity.NotionToken{
		UserID:      user.ID,
		BotID:       "bot-1",
		WorkspaceID: "ws-1",
	})
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	resp, err := newMemeDomainTest().Create(ctx, &model.CreateMemeRequest{
		CreatedWithBotID: token.BotID,
		SourceBlockID:    "block-1",
		MimeType:         "image/png",
		DataBase64:       pngBase64(t, 10, 10),
		TopText:          "TOP",
	})
	require.NoError(t, err)
	require.Equal(t, "ws-1", resp.Meme.SourceWorkspaceID)
	require.Equal(t, user.ID, resp.Meme.CreatedBy)
	require.Equal(t, 10, resp.Meme.WidthPx)
	require.Equal(t, 10, resp.Meme.HeightPx)
}

func Test_memeDomain_Create_unknownCredential(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err := newMemeDomainTest().Create(ctx, &model.CreateMemeRequest{
		CreatedWithBotID: "no-such-bot",
		MimeType:         "image/png",
		DataBase64:       pngBase64(t, 4, 4),
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_memeDomain_Create_oversizedPayload(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	token := testutil.SampleNotionToken(ctx, &entity.NotionToken{UserID: user.ID})
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	oversized := base64.StdEncoding.EncodeToString(
		bytes.Repeat([]byte{0xff}, xcontext.Configs(ctx).Meme.MaxSize+1))

	_, err := newMemeDomainTest().Create(ctx, &model.CreateMemeRequest{
		CreatedWithBotID: token.BotID,
		MimeType:         "image/png",
		DataBase64:       oversized,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_memeDomain_Create_downscalesLargeImages(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	token := testutil.SampleNotionToken(ctx, &entity.NotionToken{UserID: user.ID})
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	maxEdge := xcontext.Configs(ctx).Meme.MaxEdge
	resp, err := newMemeDomainTest().Create(ctx, &model.CreateMemeRequest{
		CreatedWithBotID: token.BotID,
		MimeType:         "image/png",
		DataBase64:       pngBase64(t, maxEdge+100, 50),
	})
	require.NoError(t, err)
	require.LessOrEqual(t, resp.Meme.WidthPx, maxEdge)
	require.LessOrEqual(t, resp.Meme.HeightPx, maxEdge)
}

func Test_memeDomain_UpdateDelete_ownerScoped(t *testing.T) {
	ctx := testutil.MockContext()
	owner := testutil.SampleUser(ctx, nil)
	other := testutil.SampleUser(ctx, nil)
	meme := testutil.SampleMeme(ctx, &entity.Meme{CreatedBy: owner.ID})
	d := newMemeDomainTest()

	allow := true
	_, err := d.Update(xcontext.WithRequestUserID(ctx, other.ID),
		&model.UpdateMemeRequest{ID: meme.ID, AllowPublic: &allow})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	_, err = d.Update(xcontext.WithRequestUserID(ctx, owner.ID),
		&model.UpdateMemeRequest{ID: meme.ID, AllowPublic: &allow})
	require.NoError(t, err)

	_, err = d.Delete(xcontext.WithRequestUserID(ctx, other.ID),
		&model.DeleteMemeRequest{ID: meme.ID})
	require.Error(t, err)

	_, err = d.Delete(xcontext.WithRequestUserID(ctx, owner.ID),
		&model.DeleteMemeRequest{ID: meme.ID})
	require.NoError(t, err)
}

func Test_memeDomain_VisibilityGate(t *testing.T) {
	ctx := testutil.MockContext()
	owner := testutil.SampleUser(ctx, nil)
	member := testutil.SampleUser(ctx, nil)
	outsider := testutil.SampleUser(ctx, nil)
	testutil.SampleNotionToken(ctx, &entity.NotionToken{
		UserID:      member.ID,
		WorkspaceID: "ws-1",
	})
	d := newMemeDomainTest()

	publicMeme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy:   owner.ID,
		AllowPublic: true,
	})
	workspaceMeme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy:         owner.ID,
		SourceWorkspaceID: "ws-1",
		AllowWorkspace:    true,
	})
	privateMeme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy:         owner.ID,
		SourceWorkspaceID: "ws-1",
	})

	// Public memes need no session at all.
	_, err := d.Get(ctx, &model.GetMemeRequest{ID: publicMeme.ID})
	require.NoError(t, err)

	// Anything else does.
	_, err = d.Get(ctx, &model.GetMemeRequest{ID: privateMeme.ID})
	require.Equal(t, errorx.Unauthenticated, err.(errorx.Error).Code)

	// Owners always see their own memes.
	_, err = d.Get(xcontext.WithRequestUserID(ctx, owner.ID),
		&model.GetMemeRequest{ID: privateMeme.ID})
	require.NoError(t, err)

	// Workspace sharing admits holders of a credential for the workspace
	// of origin.
	_, err = d.Get(xcontext.WithRequestUserID(ctx, member.ID),
		&model.GetMemeRequest{ID: workspaceMeme.ID})
	require.NoError(t, err)

	_, err = d.Get(xcontext.WithRequestUserID(ctx, outsider.ID),
		&model.GetMemeRequest{ID: workspaceMeme.ID})
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	// Without the workspace flag, even a credential holder is denied.
	_, err = d.Get(xcontext.WithRequestUserID(ctx, member.ID),
		&model.GetMemeRequest{ID: privateMeme.ID})
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_memeDomain_VisibilityGate_SourceBlockFlagIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	owner := testutil.SampleUser(ctx, nil)
	viewer := testutil.SampleUser(ctx, nil)
	d := newMemeDomainTest()

	meme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy:          owner.ID,
		SourceBlockID:      "block-1",
		AllowBySourceBlock: true,
	})

	// The flag round-trips through the view model but never grants access
	// on its own.
	resp, err := d.Get(xcontext.WithRequestUserID(ctx, owner.ID),
		&model.GetMemeRequest{ID: meme.ID})
	require.NoError(t, err)
	require.True(t, resp.Meme.AllowBySourceBlock)

	_, err = d.Get(xcontext.WithRequestUserID(ctx, viewer.ID),
		&model.GetMemeRequest{ID: meme.ID})
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_memeDomain_ServeData(t *testing.T) {
	ctx := testutil.MockContext()
	owner := testutil.SampleUser(ctx, nil)
	meme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy:   owner.ID,
		MimeType:    "image/png",
		Data:        []byte("png-bytes"),
		AllowPublic: true,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/meme?id="+meme.ID, strings.NewReader(""))
	w := httptest.NewRecorder()
	serveCtx := xcontext.WithHTTPWriter(xcontext.WithHTTPRequest(ctx, req), w)

	newMemeDomainTest().ServeData(serveCtx)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, "png-bytes", w.Body.String())

	// Non-GET methods never reach the gate.
	postReq := httptest.NewRequest(http.MethodPost, "/api/meme?id="+meme.ID, strings.NewReader(""))
	postW := httptest.NewRecorder()
	newMemeDomainTest().ServeData(
		xcontext.WithHTTPWriter(xcontext.WithHTTPRequest(ctx, postReq), postW))
	require.Equal(t, http.StatusBadRequest, postW.Code)
}

func Test_memeDomain_ServeData_etagRevalidation(t *testing.T) {
	ctx := testutil.MockContextWithUserID("crafter")
	testutil.SampleUser(ctx, &entity.User{Base: entity.Base{ID: "crafter"}})
	meme := testutil.SampleMeme(ctx, &entity.Meme{
		CreatedBy: "crafter",
		MimeType:  "image/png",
		Data:      []byte("png-bytes"),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/meme?id="+meme.ID, strings.NewReader(""))
	w := httptest.NewRecorder()
	newMemeDomainTest().ServeData(
		xcontext.WithHTTPWriter(xcontext.WithHTTPRequest(ctx, req), w))

	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Equal(t, "png-bytes", w.Body.String())

	cachedReq := httptest.NewRequest(http.MethodGet, "/api/meme?id="+meme.ID, strings.NewReader(""))
	cachedReq.Header.Set("If-None-Match", etag)
	cachedW := httptest.NewRecorder()
	newMemeDomainTest().ServeData(
		xcontext.WithHTTPWriter(xcontext.WithHTTPRequest(ctx, cachedReq), cachedW))

	require.Equal(t, http.StatusNotModified, cachedW.Code)
	require.Empty(t, cachedW.Body.String())
	require.Equal(t, etag, cachedW.Header().Get("ETag"))
}
