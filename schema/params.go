package schema

const (
	DefaultScope = "user_info"

	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	StickerHashtag = "hashtag"
	StickerMention = "mention"
	StickerCustom  = "custom"
)

// Authorization scopes commonly requested by hosts.
const (
	ScopeUserInfo     = "user_info"
	ScopeMobile       = "mobile"
	ScopeAwemeShare   = "aweme.share"
	ScopeImShare      = "im.share"
	ScopeAwemeCapture = "aweme.capture"
)

type (
	InitializeParams struct {
		ClientKey string `json:"clientKey"`
		Debug     bool   `json:"debug"`
	}

	AuthorizeParams struct {
		Scope string `json:"scope,omitempty"`
		State string `json:"state,omitempty"`
	}

	// ShareParams carries shareImages and shareVideos arguments.
	ShareParams struct {
		Media          []string      `json:"media"`
		IsAlbum        bool          `json:"isAlbum,omitempty"`
		ShareID        string        `json:"shareId,omitempty"`
		MicroAppInfo   *MicroAppInfo `json:"microAppInfo,omitempty"`
		HashTags       []string      `json:"hashTags,omitempty"`
		NewShare       *bool         `json:"newShare,omitempty"`
		ShareParam     *ShareParam   `json:"shareParam,omitempty"`
		ShareToPublish bool          `json:"shareToPublish,omitempty"`
	}

	DailyParams struct {
		Media        string        `json:"media"`
		MediaType    string        `json:"mediaType"`
		ShareID      string        `json:"shareId,omitempty"`
		MicroAppInfo *MicroAppInfo `json:"microAppInfo,omitempty"`
		HashTags     []string      `json:"hashTags,omitempty"`
		NewShare     *bool         `json:"newShare,omitempty"`
		ShareParam   *ShareParam   `json:"shareParam,omitempty"`
	}

	ImageToImParams struct {
		Media   string `json:"media"`
		ShareID string `json:"shareId,omitempty"`
	}

	HtmlToImParams struct {
		HtmlObject *HtmlObject `json:"htmlObject"`
		ShareID    string      `json:"shareId,omitempty"`
	}

	// HtmlObject accepts both the preferred and the legacy field names.
	HtmlObject struct {
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
		Discription string `json:"discription,omitempty"`
		Html        string `json:"html,omitempty"`
		URL         string `json:"url,omitempty"`
		ThumbURL    string `json:"thumbUrl,omitempty"`
		CoverURL    string `json:"coverUrl,omitempty"`
	}

	OpenRecordParams struct {
		ShareID      string        `json:"shareId,omitempty"`
		MicroAppInfo *MicroAppInfo `json:"microAppInfo,omitempty"`
		HashTags     []string      `json:"hashTags,omitempty"`
		ShareParam   *ShareParam   `json:"shareParam,omitempty"`
	}

	MicroAppInfo struct {
		AppID       string `json:"appId,omitempty"`
		AppTitle    string `json:"appTitle,omitempty"`
		AppURL      string `json:"appUrl,omitempty"`
		Description string `json:"description,omitempty"`
	}

	ShareParam struct {
		TitleObject            *TitleObject    `json:"titleObject,omitempty"`
		StickersObject         *StickersObject `json:"stickersObject,omitempty"`
		PoiID                  string          `json:"poiId,omitempty"`
		ProductExtraInfo       map[string]any  `json:"productExtraInfo,omitempty"`
		ProductExtraInfoLegacy map[string]any  `json:"product_extra_info,omitempty"`
	}

	TitleObject struct {
		Title   string        `json:"title,omitempty"`
		Markers []TitleMarker `json:"markers,omitempty"`
	}

	TitleMarker struct {
		Type   string `json:"type"`
		Name   string `json:"name,omitempty"`
		OpenID string `json:"openId,omitempty"`
		Start  int    `json:"start,omitempty"`
	}

	StickersObject struct {
		Stickers []Sticker `json:"stickers,omitempty"`
	}

	Sticker struct {
		Type            string   `json:"type"`
		Name            string   `json:"name,omitempty"`
		OpenID          string   `json:"openId,omitempty"`
		Path            string   `json:"path,omitempty"`
		URI             string   `json:"uri,omitempty"`
		StartTime       *int     `json:"startTime,omitempty"`
		EndTime         *int     `json:"endTime,omitempty"`
		OffsetX         *float64 `json:"offsetX,omitempty"`
		OffsetY         *float64 `json:"offsetY,omitempty"`
		NormalizedSizeX *float64 `json:"normalizedSizeX,omitempty"`
		NormalizedSizeY *float64 `json:"normalizedSizeY,omitempty"`
	}

	// CallbackResponse is the payload of a callback/response notification.
	CallbackResponse struct {
		Type               string   `json:"type"`
		ErrorCode          int      `json:"errorCode"`
		SubErrorCode       int      `json:"subErrorCode,omitempty"`
		ErrorMsg           string   `json:"errorMsg,omitempty"`
		AuthCode           string   `json:"authCode,omitempty"`
		State              string   `json:"state,omitempty"`
		GrantedPermissions []string `json:"grantedPermissions,omitempty"`
	}

	// StayInDouyin reports the user chose to stay in Douyin after a share, action is share or im.
	StayInDouyin struct {
		Action string `json:"action"`
	}

	CancelledParams struct {
		RequestId any    `json:"requestId"`
		Reason    string `json:"reason,omitempty"`
	}
)

// Stay in Douyin actions
const (
	StayActionShare = "share"
	StayActionIm    = "im"
)

// Callback response types
const (
	CallbackAuthorization  = "authorization"
	CallbackShare          = "share"
	CallbackShareToContact = "shareToContact"
	CallbackOpenRecord     = "openRecord"
)

// ResolvedDescription returns description or the legacy discription field.
func (h *HtmlObject) ResolvedDescription() string {
	if h.Description != "" {
		return h.Description
	}
	return h.Discription
}

// ResolvedHtml returns html or the url fallback.
func (h *HtmlObject) ResolvedHtml() string {
	if h.Html != "" {
		return h.Html
	}
	return h.URL
}

// ResolvedThumb returns thumbUrl or the coverUrl fallback.
func (h *HtmlObject) ResolvedThumb() string {
	if h.ThumbURL != "" {
		return h.ThumbURL
	}
	return h.CoverURL
}

// ResolvedProductExtraInfo returns productExtraInfo or the snake case variant.
func (p *ShareParam) ResolvedProductExtraInfo() map[string]any {
	if p == nil {
		return nil
	}
	if len(p.ProductExtraInfo) > 0 {
		return p.ProductExtraInfo
	}
	return p.ProductExtraInfoLegacy
}
