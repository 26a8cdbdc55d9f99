package dto

// VimeoVideo is the subset of the Vimeo video representation this service reads.
type VimeoVideo struct {
	ID             string         `json:"id"`
	URI            string         `json:"uri"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Link           string         `json:"link"`
	Duration       int            `json:"duration"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	CreatedTime    string         `json:"created_time,omitempty"`
	PlayerEmbedURL string         `json:"player_embed_url,omitempty"`
	Pictures       *VimeoPictures `json:"pictures,omitempty"`
	Embed          *VimeoEmbed    `json:"embed,omitempty"`
}

type VimeoPictures struct {
	URI   string             `json:"uri,omitempty"`
	Sizes []VimeoPictureSize `json:"sizes"`
}

type VimeoPictureSize struct {
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	Link               string `json:"link"`
	LinkWithPlayButton string `json:"link_with_play_button,omitempty"`
}

type VimeoEmbed struct {
	HTML string `json:"html,omitempty"`
}

type VimeoPaging struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	First    string  `json:"first"`
	Last     string  `json:"last"`
}

// VimeoPage is one page of GET /me/videos.
type VimeoPage struct {
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Paging  VimeoPaging  `json:"paging"`
	Data    []VimeoVideo `json:"data"`
}

func (p *VimeoPage) HasNext() bool {
	return p.Paging.Next != nil && *p.Paging.Next != ""
}

// VimeoCollection is the result of walking several pages. Complete is false
// when a later page failed or the page limit was hit first.
type VimeoCollection struct {
	Videos   []VimeoVideo `json:"videos"`
	Complete bool         `json:"complete"`
	Total    int          `json:"total"`
	Pages    int          `json:"pages"`
	Warning  string       `json:"warning,omitempty"`
}

type VimeoVerifyResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Total   int    `json:"total,omitempty"`
}

type VimeoVideoResponse struct {
	Video VimeoVideo `json:"video"`
}

type VimeoPageResponse struct {
	Videos  []VimeoVideo `json:"videos"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Total   int          `json:"total"`
	HasNext bool         `json:"has_next"`
}

type VimeoThumbnailResponse struct {
	ThumbnailURL string `json:"thumbnail_url"`
}
