package vimeo

import (
	"net/url"
	"regexp"
	"strings"
)

// Ref is a Vimeo video id plus the privacy hash unlisted videos need.
type Ref struct {
	ID   string
	Hash *string
}

func (r Ref) HashValue() string {
	if r.Hash == nil {
		return ""
	}
	return *r.Hash
}

var (
	hashPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// Checked in order, first match wins.
	manageWithHash = regexp.MustCompile(`vimeo\.com/manage/videos/(\d+)/([A-Za-z0-9]+)`)
	manageNoHash   = regexp.MustCompile(`vimeo\.com/manage/videos/(\d+)`)
	watchWithHash  = regexp.MustCompile(`vimeo\.com/(\d+)/([A-Za-z0-9]+)`)
	bareNumeric    = regexp.MustCompile(`^\d+$`)
	embedOrWatch   = regexp.MustCompile(`(?:player\.)?vimeo\.com/(?:video/)?(\d+)`)
)

// ResolveID turns a bare id or any common Vimeo URL into an id and optional
// hash. Input that matches nothing is returned as the id unchanged, so callers
// must not assume the result is a valid Vimeo id.
func ResolveID(input string) Ref {
	s := strings.TrimSpace(input)

	if m := manageWithHash.FindStringSubmatch(s); m != nil {
		return Ref{ID: m[1], Hash: &m[2]}
	}
	if m := manageNoHash.FindStringSubmatch(s); m != nil {
		return Ref{ID: m[1]}
	}
	if m := watchWithHash.FindStringSubmatch(s); m != nil {
		return Ref{ID: m[1], Hash: &m[2]}
	}
	if bareNumeric.MatchString(s) {
		return Ref{ID: s}
	}
	if m := embedOrWatch.FindStringSubmatch(s); m != nil {
		return Ref{ID: m[1], Hash: hashFromQuery(s)}
	}
	return Ref{ID: s}
}

// hashFromQuery reads the h= parameter player embed URLs carry for unlisted videos.
func hashFromQuery(raw string) *string {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	h := u.Query().Get("h")
	if h == "" || !hashPattern.MatchString(h) {
		return nil
	}
	return &h
}
