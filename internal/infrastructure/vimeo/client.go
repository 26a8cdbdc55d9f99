package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"
)

const (
	acceptHeader = "application/vnd.vimeo.*+json;version=3.4"
	videoFields  = "uri,name,description,link,duration,width,height,created_time,player_embed_url,pictures.sizes,embed.html"
	maxPerPage   = 100
)

var errNotFound = errors.New("vimeo: not found")

type Client struct {
	baseURL    string
	token      func() string
	httpClient *http.Client
}

// NewClient builds a client for the Vimeo REST API. token is called on every
// request so a missing token fails only the call that needs it.
func NewClient(baseURL string, token func() string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.vimeo.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token := ""
	if c.token != nil {
		token = strings.TrimSpace(c.token())
	}
	if token == "" {
		return ErrMissingToken
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("vimeo: build request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+token)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vimeo: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Body: readSnippet(resp.Body)}
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &ProviderError{StatusCode: resp.StatusCode, Body: readSnippet(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("vimeo: decode response: %w", err)
	}
	return nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(b))
}

// FetchByID returns found=false without an error when Vimeo answers 404.
func (c *Client) FetchByID(ctx context.Context, id, hash string) (*dto.VimeoVideo, bool, error) {
	ref := id
	if hash != "" {
		ref += ":" + hash
	}
	var video dto.VimeoVideo
	err := c.get(ctx, "/videos/"+url.PathEscape(ref), url.Values{"fields": {videoFields}}, &video)
	if errors.Is(err, errNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	video.ID = idFromURI(video.URI)
	if video.ID == "" {
		video.ID = id
	}
	return &video, true, nil
}

func (c *Client) FetchPage(ctx context.Context, perPage, page int) (*dto.VimeoPage, error) {
	perPage = clampPerPage(perPage)
	if page < 1 {
		page = 1
	}
	query := url.Values{
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
		"fields":   {"total,page,per_page,paging," + prefixFields("data.", videoFields)},
	}

	var result dto.VimeoPage
	err := c.get(ctx, "/me/videos", query, &result)
	if errors.Is(err, errNotFound) {
		return nil, &ProviderError{StatusCode: http.StatusNotFound, Body: "listing endpoint not found"}
	}
	if err != nil {
		return nil, err
	}
	if result.Page == 0 {
		result.Page = page
	}
	if result.PerPage == 0 {
		result.PerPage = perPage
	}
	for i := range result.Data {
		result.Data[i].ID = idFromURI(result.Data[i].URI)
	}
	return &result, nil
}

// FetchAll walks /me/videos from page 1. A failure on the first page is an
// error; a failure on a later page returns what was collected with
// Complete=false, as does running out of maxPages.
func (c *Client) FetchAll(ctx context.Context, perPage, maxPages int) (*dto.VimeoCollection, error) {
	perPage = clampPerPage(perPage)
	if maxPages < 1 {
		maxPages = 1
	}

	col := &dto.VimeoCollection{Videos: []dto.VimeoVideo{}}
	for page := 1; page <= maxPages; page++ {
		p, err := c.FetchPage(ctx, perPage, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			logger.Warnf("vimeo: listing stopped at page %d: %v", page, err)
			col.Warning = fmt.Sprintf("page %d failed: %v", page, err)
			return col, nil
		}

		col.Videos = append(col.Videos, p.Data...)
		col.Pages = page
		col.Total = p.Total
		if len(p.Data) < perPage || !p.HasNext() {
			col.Complete = true
			return col, nil
		}
	}

	col.Warning = fmt.Sprintf("stopped after %d pages", maxPages)
	return col, nil
}

// VerifyConnection never returns an error; the outcome is in the result.
func (c *Client) VerifyConnection(ctx context.Context) dto.VimeoVerifyResult {
	p, err := c.FetchPage(ctx, 1, 1)
	if err != nil {
		return dto.VimeoVerifyResult{OK: false, Message: Describe(err)}
	}
	return dto.VimeoVerifyResult{
		OK:      true,
		Message: fmt.Sprintf("Connected to Vimeo, %d videos available", p.Total),
		Total:   p.Total,
	}
}

// Describe renders a client error as an operator-facing sentence.
func Describe(err error) string {
	var authErr *AuthError
	var provErr *ProviderError
	switch {
	case errors.Is(err, ErrMissingToken):
		return "VIMEO_ACCESS_TOKEN is not set"
	case errors.As(err, &authErr):
		return "Vimeo rejected the access token (401)"
	case errors.As(err, &provErr):
		return fmt.Sprintf("Vimeo API returned status %d", provErr.StatusCode)
	default:
		return fmt.Sprintf("Could not reach Vimeo: %v", err)
	}
}

// ExtractThumbnail returns the link of the picture with the largest pixel
// area, or "" when the video has no pictures.
func ExtractThumbnail(v *dto.VimeoVideo) string {
	if v == nil || v.Pictures == nil {
		return ""
	}
	best, bestArea := "", -1
	for _, size := range v.Pictures.Sizes {
		if area := size.Width * size.Height; area > bestArea && size.Link != "" {
			best, bestArea = size.Link, area
		}
	}
	return best
}

func idFromURI(uri string) string {
	uri = strings.TrimRight(uri, "/")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		uri = uri[i+1:]
	}
	id, _, _ := strings.Cut(uri, ":")
	return id
}

func clampPerPage(perPage int) int {
	if perPage < 1 {
		return 25
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}

func prefixFields(prefix, fields string) string {
	parts := strings.Split(fields, ",")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ",")
}
