package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"prismriver-client/internal/constants"
	apperrors "prismriver-client/internal/errors"
	"prismriver-client/internal/models"
)

// MediaQuery filters GET /media. Without Query the server returns Limit
// random items and ignores Page.
type MediaQuery struct {
	Query string
	Limit int
	Page  int
}

func (q MediaQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Query != "" {
		v.Set("query", q.Query)
		if q.Page > 0 {
			v.Set("page", strconv.Itoa(q.Page))
		}
	}
	return v
}

// ListMedia searches the media library.
func (c *Client) ListMedia(ctx context.Context, q MediaQuery) (*models.MediaPage, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: constants.PathMedia, query: q.values()})
	if err != nil {
		return nil, err
	}
	var page models.MediaPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("api: decode media page: %w", err)
	}
	return &page, nil
}

// MediaRefresh selects what the server should re-fetch for a media item.
// Video nil leaves the video flag alone.
type MediaRefresh struct {
	Video  *bool
	Length bool
	Title  bool
}

func (r MediaRefresh) values() url.Values {
	v := url.Values{}
	if r.Video != nil {
		v.Set("video", strconv.FormatBool(*r.Video))
	}
	v.Set("length", strconv.FormatBool(r.Length))
	v.Set("title", strconv.FormatBool(r.Title))
	return v
}

// RefreshMedia asks the server to update a media record and returns it.
// An unchanged record yields an error for which IsNotModified is true.
func (c *Client) RefreshMedia(ctx context.Context, mediaType, id string, r MediaRefresh) (*models.Media, error) {
	if mediaType == "" || id == "" {
		return nil, fmt.Errorf("api: media type and id are required")
	}
	path := constants.PathMedia + "/" + url.PathEscape(mediaType) + "/" + url.PathEscape(id)
	data, err := c.do(ctx, request{method: http.MethodPut, path: path, form: r.values()})
	if err != nil {
		return nil, err
	}
	var media models.Media
	if err := json.Unmarshal(data, &media); err != nil {
		return nil, fmt.Errorf("api: decode media: %w", err)
	}
	return &media, nil
}

// IsNotModified reports whether err is the server's 304 answer.
func IsNotModified(err error) bool {
	apiErr, ok := apperrors.As(err)
	return ok && apiErr.HTTPStatus == http.StatusNotModified
}
