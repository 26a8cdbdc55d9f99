package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
)

func token(v string) func() string { return func() string { return v } }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, token("secret"), 5*time.Second)
}

func TestFetchByIDSendsBearerAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/videos/123:abc" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"uri":"/videos/123","name":"Reel","duration":61,"pictures":{"sizes":[{"width":100,"height":50,"link":"small"}]}}`)
	})

	video, found, err := client.FetchByID(context.Background(), "123", "abc")
	if err != nil || !found {
		t.Fatalf("FetchByID = %v, %v", found, err)
	}
	if video.ID != "123" || video.Name != "Reel" || video.Duration != 61 {
		t.Fatalf("unexpected video %+v", video)
	}
}

func TestFetchByIDStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		check  func(t *testing.T, found bool, err error)
	}{
		{http.StatusNotFound, func(t *testing.T, found bool, err error) {
			if err != nil || found {
				t.Fatalf("404 should be not-found without error, got %v, %v", found, err)
			}
		}},
		{http.StatusUnauthorized, func(t *testing.T, _ bool, err error) {
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
		}},
		{http.StatusBadGateway, func(t *testing.T, _ bool, err error) {
			var provErr *ProviderError
			if !errors.As(err, &provErr) || provErr.StatusCode != http.StatusBadGateway {
				t.Fatalf("expected ProviderError 502, got %v", err)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"error":"nope"}`)
			})
			_, found, err := client.FetchByID(context.Background(), "1", "")
			tc.check(t, found, err)
		})
	}
}

func TestMissingTokenFailsAtCallTime(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	client := NewClient(srv.URL, token(""), time.Second)
	if _, _, err := client.FetchByID(context.Background(), "1", ""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no upstream call without a token")
	}
}

// pagedServer serves total videos perPage at a time and fails on failPage.
func pagedServer(t *testing.T, total, failPage int) *Client {
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if page == failPage {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		start := (page - 1) * perPage
		result := dto.VimeoPage{Total: total, Page: page, PerPage: perPage, Data: []dto.VimeoVideo{}}
		for i := start; i < start+perPage && i < total; i++ {
			result.Data = append(result.Data, dto.VimeoVideo{URI: fmt.Sprintf("/videos/%d", i+1)})
		}
		if start+perPage < total {
			next := fmt.Sprintf("/me/videos?page=%d", page+1)
			result.Paging.Next = &next
		}
		_ = json.NewEncoder(w).Encode(result)
	})
}

func TestFetchAllStopsOnShortPage(t *testing.T) {
	client := pagedServer(t, 5, 0)

	col, err := client.FetchAll(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if !col.Complete || len(col.Videos) != 5 || col.Pages != 3 {
		t.Fatalf("unexpected collection complete=%v videos=%d pages=%d", col.Complete, len(col.Videos), col.Pages)
	}
	if col.Videos[4].ID != "5" {
		t.Fatalf("expected ids to be derived from uri, got %q", col.Videos[4].ID)
	}
}

func TestFetchAllStopsWhenNoNextPage(t *testing.T) {
	client := pagedServer(t, 4, 0)

	col, err := client.FetchAll(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if !col.Complete || len(col.Videos) != 4 || col.Pages != 2 {
		t.Fatalf("unexpected collection complete=%v videos=%d pages=%d", col.Complete, len(col.Videos), col.Pages)
	}
}

func TestFetchAllReturnsPartialResultsAfterFirstPage(t *testing.T) {
	client := pagedServer(t, 10, 3)

	col, err := client.FetchAll(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("expected partial result, got error %v", err)
	}
	if col.Complete {
		t.Fatalf("expected complete=false after a mid-listing failure")
	}
	if len(col.Videos) != 4 {
		t.Fatalf("expected the 4 videos from pages 1-2, got %d", len(col.Videos))
	}
	if col.Warning == "" {
		t.Fatalf("expected a warning describing the failure")
	}
}

func TestFetchAllFailsWhenFirstPageFails(t *testing.T) {
	client := pagedServer(t, 10, 1)

	if _, err := client.FetchAll(context.Background(), 2, 10); err == nil {
		t.Fatalf("expected error when page 1 fails")
	}
}

func TestFetchAllPageLimitIsIncomplete(t *testing.T) {
	client := pagedServer(t, 10, 0)

	col, err := client.FetchAll(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if col.Complete || len(col.Videos) != 4 {
		t.Fatalf("expected truncated incomplete listing, got complete=%v videos=%d", col.Complete, len(col.Videos))
	}
}

func TestExtractThumbnailPicksLargestArea(t *testing.T) {
	v := &dto.VimeoVideo{Pictures: &dto.VimeoPictures{Sizes: []dto.VimeoPictureSize{
		{Width: 1920, Height: 100, Link: "wide"},
		{Width: 1280, Height: 720, Link: "hd"},
		{Width: 640, Height: 360, Link: "sd"},
	}}}
	if got := ExtractThumbnail(v); got != "hd" {
		t.Fatalf("ExtractThumbnail = %q, want hd", got)
	}
	if got := ExtractThumbnail(&dto.VimeoVideo{}); got != "" {
		t.Fatalf("expected empty link without pictures, got %q", got)
	}
	if got := ExtractThumbnail(nil); got != "" {
		t.Fatalf("expected empty link for nil video, got %q", got)
	}
}

func TestVerifyConnection(t *testing.T) {
	ok := pagedServer(t, 7, 0)
	res := ok.VerifyConnection(context.Background())
	if !res.OK || res.Total != 7 {
		t.Fatalf("expected success with total 7, got %+v", res)
	}

	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	res = failing.VerifyConnection(context.Background())
	if res.OK || res.Message == "" {
		t.Fatalf("expected failure with a message, got %+v", res)
	}

	noToken := NewClient("http://127.0.0.1:1", token(""), time.Second)
	res = noToken.VerifyConnection(context.Background())
	if res.OK || res.Message != "VIMEO_ACCESS_TOKEN is not set" {
		t.Fatalf("unexpected result without token: %+v", res)
	}
}
