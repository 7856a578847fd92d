package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/api/notion"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/urlcache"
	"github.com/memegentino/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// templateFetchConcurrency bounds the parallel image downloads of one
// gallery request.
const templateFetchConcurrency = 8

type TemplateDomain interface {
	GetTemplateImages(context.Context, *model.GetTemplateImagesRequest) (*model.GetTemplateImagesResponse, error)
}

type templateDomain struct {
	notionTokenRepo repository.NotionTokenRepository
	notionEndpoint  notion.IEndpoint
	urlCache        *urlcache.Cache
}

func NewTemplateDomain(
	notionTokenRepo repository.NotionTokenRepository,
	notionEndpoint notion.IEndpoint,
	urlCache *urlcache.Cache,
) TemplateDomain {
	return &templateDomain{
		notionTokenRepo: notionTokenRepo,
		notionEndpoint:  notionEndpoint,
		urlCache:        urlCache,
	}
}

// GetTemplateImages collects every files-type property of a page and
// returns the images inlined as base64 data URLs, so the browser never
// touches the provider's short-lived signed URLs.
func (d *templateDomain) GetTemplateImages(
	ctx context.Context, req *model.GetTemplateImagesRequest,
) (*model.GetTemplateImagesResponse, error) {
	if req.WorkspaceID == "" || req.PageID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing workspace_id or page_id")
	}

	token, err := d.notionTokenRepo.GetByUserWorkspace(
		ctx, xcontext.RequestUserID(ctx), req.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied,
				"No credential for workspace %s", req.WorkspaceID)
		}

		xcontext.Logger(ctx).Errorf("Cannot load workspace credential: %v", err)
		return nil, errorx.Unknown
	}

	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Notion.Timeout)
	defer cancel()

	page, err := d.notionEndpoint.RetrievePage(callCtx, token.AccessToken, req.PageID)
	if err != nil {
		if notion.IsTimeout(err) {
			return nil, errorx.New(errorx.ProxyTimeout, "Upstream request timed out")
		}

		var apiErr *notion.APIError
		if errors.As(err, &apiErr) {
			return nil, errorx.New(errorx.DownstreamAPI, "Cannot retrieve page: %s", apiErr.Message)
		}

		xcontext.Logger(ctx).Errorf("Cannot retrieve page: %v", err)
		return nil, errorx.New(errorx.ProxyTransport, "Upstream request failed")
	}

	type fileRef struct {
		key string
		url string
	}

	refs := []fileRef{}
	for _, property := range page.Properties {
		if property.Type != "files" {
			continue
		}

		for _, file := range property.Files {
			url, expires := fileURL(file)
			if url == "" {
				continue
			}

			refs = append(refs, fileRef{
				key: urlcache.Key(url),
				url: d.urlCache.Stable(url, expires),
			})
		}
	}

	images := make([]string, len(refs))
	eg, egCtx := errgroup.WithContext(callCtx)
	eg.SetLimit(templateFetchConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		eg.Go(func() error {
			// Non-image files stay out of the gallery; their slot is left
			// empty and dropped below.
			dataURL, err := fetchDataURL(egCtx, ref.url)
			if err != nil {
				return err
			}

			images[i] = dataURL
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		if notion.IsTimeout(err) {
			return nil, errorx.New(errorx.ProxyTimeout, "Upstream request timed out")
		}

		xcontext.Logger(ctx).Errorf("Cannot fetch template image: %v", err)
		return nil, errorx.New(errorx.ProxyTransport, "Upstream request failed")
	}

	result := make(map[string]string, len(refs))
	for i, ref := range refs {
		if images[i] == "" {
			continue
		}
		result[ref.key] = images[i]
	}

	return &model.GetTemplateImagesResponse{Images: result}, nil
}

func fileURL(file notion.File) (string, time.Time) {
	switch file.Type {
	case notion.FileTypeExternal:
		if file.External != nil {
			return file.External.URL, time.Time{}
		}
	case notion.FileTypeHosted:
		if file.File != nil {
			return file.File.URL, file.File.ExpiryTime
		}
	}

	return "", time.Time{}
}

func fetchDataURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", nil
	}

	return fmt.Sprintf("data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(body)), nil
}
