package bridge

import (
	"context"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/failure"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
	"github.com/viant/dyopen/sdk"
	"go.uber.org/zap"
)

const (
	unknownVersion = "Unknown"
	androidOnly    = "This method is only supported on Android."
)

var clientKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Initialize initializes the vendor SDK and persists the configuration record.
func (b *Bridge) Initialize(ctx context.Context, params *schema.InitializeParams) (*schema.Result, error) {
	if params == nil || params.ClientKey == "" {
		return nil, schema.NewBadArgs("clientKey is required.", "clientKey")
	}
	if !clientKeyPattern.MatchString(params.ClientKey) {
		return nil, schema.NewFailure(schema.InvalidClientKey, "clientKey contains invalid characters.",
			map[string]any{"parameterName": "clientKey"})
	}
	if err := b.sdk.Init(ctx, params.ClientKey, params.Debug); err != nil {
		if errors.Is(err, sdk.ErrDetached) {
			return nil, schema.NewFromError(schema.NoContext, err)
		}
		return nil, failure.FromError(schema.InitError, err)
	}
	if err := b.store.Save(ctx, params.ClientKey, params.Debug); err != nil {
		return nil, failure.FromError(schema.InitError, err)
	}
	b.setInitialized(params.ClientKey)
	b.logger.Info("sdk initialized", zap.Bool("debug", params.Debug))
	return schema.NewResult("SDK initialized successfully"), nil
}

// Authorize requests an authorization code and waits for the vendor callback.
func (b *Bridge) Authorize(ctx context.Context, params *schema.AuthorizeParams) (*schema.AuthorizeResult, error) {
	if params == nil {
		params = &schema.AuthorizeParams{}
	}
	if err := b.checkReady(); err != nil {
		return nil, err
	}
	scope := params.Scope
	if scope == "" {
		scope = schema.DefaultScope
	}
	state := params.State
	if state == "" {
		state = uuid.NewString()
	}
	request := &sdk.AuthorizeRequest{Scope: scope, State: state, CallerLocalEntry: b.callerLocalEntry}
	outcome, err := b.await(ctx, correlator.Authorization, state, schema.AuthError, schema.AuthFailed, func() error {
		return b.sdk.Authorize(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		return nil, outcome.Failure
	}
	result := &schema.AuthorizeResult{Success: true, State: state, GrantedPermissions: []string{}}
	result.AuthCode, _ = outcome.Success["authCode"].(string)
	if permissions, ok := outcome.Success["grantedPermissions"].([]string); ok && permissions != nil {
		result.GrantedPermissions = permissions
	}
	if returned, _ := outcome.Success["state"].(string); returned != "" && returned != state {
		return nil, schema.NewFailure(schema.AuthStateMismatch, "Authorization state mismatch",
			map[string]any{"expected": state, "actual": returned})
	}
	return result, nil
}

// ShareImages shares images to Douyin
func (b *Bridge) ShareImages(ctx context.Context, params *schema.ShareParams) (*schema.Result, error) {
	return b.shareMedia(ctx, schema.MethodShareImages, schema.MediaTypeImage, params, "Images shared successfully")
}

// ShareVideos shares videos to Douyin
func (b *Bridge) ShareVideos(ctx context.Context, params *schema.ShareParams) (*schema.Result, error) {
	return b.shareMedia(ctx, schema.MethodShareVideos, schema.MediaTypeVideo, params, "Videos shared successfully")
}

func (b *Bridge) shareMedia(ctx context.Context, method, mediaType string, params *schema.ShareParams, message string) (*schema.Result, error) {
	if err := b.checkSurface(); err != nil {
		return nil, err
	}
	if params == nil || len(params.Media) == 0 {
		return nil, schema.NewBadArgs("media list cannot be empty.", "media")
	}
	if err := b.checkInitialized(); err != nil {
		return nil, err
	}
	if !b.sdk.Installed(ctx) {
		return nil, schema.NewFailure(schema.DouyinNotInstalled, "Douyin is not installed.", nil)
	}
	request := &sdk.ShareRequest{
		MediaType:        mediaType,
		ShareID:          params.ShareID,
		ShareToType:      sdk.ShareToPublish,
		CallerLocalEntry: b.callerLocalEntry,
	}
	var owned []*locator.Normalized
	defer func() { b.release(ctx, owned) }()
	switch b.platform {
	case IOS:
		request.Media = params.Media
		request.LandedPage = sdk.LandedPageEdit
		if params.ShareToPublish {
			request.LandedPage = sdk.LandedPagePublish
		}
		request.ExtraInfo = extraInfo(params.MicroAppInfo, params.ShareParam, params.HashTags)
	default:
		if params.IsAlbum && !b.sdk.Supports(ctx, sdk.CapabilityAlbum) {
			return nil, schema.NewUnsupported(schema.UnsupportedAlbum, method, "album share is not supported by the installed Douyin")
		}
		items, err := b.normalizer.NormalizeAll(ctx, params.Media)
		if err != nil {
			return nil, failure.FromError(schema.ShareError, err)
		}
		owned = append(owned, items...)
		request.Media = references(items)
		request.Album = params.IsAlbum
		request.NewShare = params.NewShare != nil && *params.NewShare
		request.HashTags = params.HashTags
		request.MicroAppInfo = params.MicroAppInfo
		var stickers []*locator.Normalized
		request.ShareParam, stickers = b.prepareShareParam(ctx, params.ShareParam, request.Media)
		owned = append(owned, stickers...)
	}
	if err := b.share(ctx, schema.ShareError, schema.ShareFailed, request); err != nil {
		return nil, err
	}
	return schema.NewResult(message), nil
}

// ShareDaily shares one image or video as a daily story
func (b *Bridge) ShareDaily(ctx context.Context, params *schema.DailyParams) (*schema.Result, error) {
	if err := b.checkAndroid(schema.MethodShareDaily); err != nil {
		return nil, err
	}
	if err := b.checkSurface(); err != nil {
		return nil, err
	}
	var mediaType string
	if params != nil {
		mediaType = strings.ToLower(params.MediaType)
	}
	if params == nil || params.Media == "" || (mediaType != schema.MediaTypeImage && mediaType != schema.MediaTypeVideo) {
		return nil, schema.NewBadArgs("media and mediaType(image|video) are required.", "media")
	}
	if err := b.checkInitialized(); err != nil {
		return nil, err
	}
	if !b.sdk.Supports(ctx, sdk.CapabilityDaily) {
		return nil, schema.NewUnsupported(schema.UnsupportedDaily, schema.MethodShareDaily, "daily share is not supported by the installed Douyin")
	}
	item, err := b.normalizer.Normalize(ctx, params.Media)
	if err != nil {
		return nil, failure.FromError(schema.ShareDailyError, err)
	}
	owned := []*locator.Normalized{item}
	defer func() { b.release(ctx, owned) }()
	request := &sdk.ShareRequest{
		MediaType:        mediaType,
		Media:            []string{item.Reference},
		ShareID:          params.ShareID,
		ShareToType:      sdk.ShareToDaily,
		NewShare:         params.NewShare == nil || *params.NewShare,
		HashTags:         params.HashTags,
		MicroAppInfo:     params.MicroAppInfo,
		CallerLocalEntry: b.callerLocalEntry,
	}
	var stickers []*locator.Normalized
	request.ShareParam, stickers = b.prepareShareParam(ctx, params.ShareParam, request.Media)
	owned = append(owned, stickers...)
	if err = b.share(ctx, schema.ShareDailyError, schema.ShareDailyError, request); err != nil {
		return nil, err
	}
	return schema.NewResult("Daily shared successfully"), nil
}

// ShareImageToIm shares one image to a Douyin contact
func (b *Bridge) ShareImageToIm(ctx context.Context, params *schema.ImageToImParams) (*schema.Result, error) {
	if err := b.checkAndroid(schema.MethodShareImageToIm); err != nil {
		return nil, err
	}
	if err := b.checkSurface(); err != nil {
		return nil, err
	}
	if params == nil || params.Media == "" {
		return nil, schema.NewBadArgs("media is required.", "media")
	}
	if err := b.checkContacts(ctx, schema.MethodShareImageToIm); err != nil {
		return nil, err
	}
	item, err := b.normalizer.Normalize(ctx, params.Media)
	if err != nil {
		return nil, failure.FromError(schema.ShareImError, err)
	}
	defer b.release(ctx, []*locator.Normalized{item})
	request := &sdk.ContactRequest{Media: []string{item.Reference}, ShareID: params.ShareID, CallerLocalEntry: b.callerLocalEntry}
	if err = b.shareToContact(ctx, schema.ShareImError, request); err != nil {
		return nil, err
	}
	return schema.NewResult("Image shared to contact successfully"), nil
}

// ShareHtmlToIm shares an html card to a Douyin contact
func (b *Bridge) ShareHtmlToIm(ctx context.Context, params *schema.HtmlToImParams) (*schema.Result, error) {
	if err := b.checkAndroid(schema.MethodShareHtmlToIm); err != nil {
		return nil, err
	}
	if err := b.checkSurface(); err != nil {
		return nil, err
	}
	if params == nil || params.HtmlObject == nil {
		return nil, schema.NewBadArgs("htmlObject is required.", "htmlObject")
	}
	if err := b.checkContacts(ctx, schema.MethodShareHtmlToIm); err != nil {
		return nil, err
	}
	html := params.HtmlObject
	request := &sdk.ContactRequest{
		Html: &schema.HtmlObject{
			Title:       html.Title,
			Description: html.ResolvedDescription(),
			Html:        html.ResolvedHtml(),
			ThumbURL:    html.ResolvedThumb(),
		},
		ShareID:          params.ShareID,
		CallerLocalEntry: b.callerLocalEntry,
	}
	if err := b.shareToContact(ctx, schema.ShareHtmlImError, request); err != nil {
		return nil, err
	}
	return schema.NewResult("Html shared to contact successfully"), nil
}

// OpenRecord opens the Douyin capture page
func (b *Bridge) OpenRecord(ctx context.Context, params *schema.OpenRecordParams) (*schema.Result, error) {
	if err := b.checkAndroid(schema.MethodOpenRecord); err != nil {
		return nil, err
	}
	if err := b.checkReady(); err != nil {
		return nil, err
	}
	if params == nil {
		params = &schema.OpenRecordParams{}
	}
	if !b.sdk.Supports(ctx, sdk.CapabilityRecord) {
		return nil, schema.NewUnsupported(schema.UnsupportedRecord, schema.MethodOpenRecord, "record page is not supported by the installed Douyin")
	}
	request := &sdk.RecordRequest{
		ShareID:          params.ShareID,
		HashTags:         params.HashTags,
		MicroAppInfo:     params.MicroAppInfo,
		CallerLocalEntry: b.callerLocalEntry,
	}
	var stickers []*locator.Normalized
	request.ShareParam, stickers = b.prepareShareParam(ctx, params.ShareParam, nil)
	defer func() { b.release(ctx, stickers) }()
	outcome, err := b.await(ctx, correlator.OpenRecord, params.ShareID, schema.OpenRecordError, schema.OpenRecordError, func() error {
		return b.sdk.OpenRecord(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		return nil, outcome.Failure
	}
	return schema.NewResult("Record page opened successfully"), nil
}

// IsDouyinInstalled reports whether Douyin or Douyin Lite is installed, false on any error.
func (b *Bridge) IsDouyinInstalled(ctx context.Context) bool {
	return b.sdk.Installed(ctx)
}

// GetPlatformVersion returns the host platform and OS version
func (b *Bridge) GetPlatformVersion() string {
	version := b.osVersion
	if version == "" {
		version = unknownVersion
	}
	if b.platform == IOS {
		return "iOS " + version
	}
	return "Android " + version
}

// GetSDKVersion returns the vendor SDK version
func (b *Bridge) GetSDKVersion() string {
	if version := b.sdk.Version(); version != "" {
		return version
	}
	return unknownVersion
}

// Reset clears the persisted configuration record.
func (b *Bridge) Reset(ctx context.Context) (*schema.Result, error) {
	if err := b.store.Reset(ctx); err != nil {
		return nil, failure.FromError(schema.UnknownError, err)
	}
	b.setInitialized("")
	return schema.NewResult("Configuration reset"), nil
}

func (b *Bridge) share(ctx context.Context, code, vendorCode string, request *sdk.ShareRequest) error {
	outcome, err := b.await(ctx, correlator.Share, request.ShareID, code, vendorCode, func() error {
		return b.sdk.Share(ctx, request)
	})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return outcome.Failure
	}
	return nil
}

func (b *Bridge) shareToContact(ctx context.Context, code string, request *sdk.ContactRequest) error {
	outcome, err := b.await(ctx, correlator.ShareToContact, request.ShareID, code, code, func() error {
		return b.sdk.ShareToContact(ctx, request)
	})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return outcome.Failure
	}
	return nil
}

func (b *Bridge) checkReady() error {
	if err := b.checkSurface(); err != nil {
		return err
	}
	return b.checkInitialized()
}

func (b *Bridge) checkSurface() error {
	if b.sdk.Attached() {
		return nil
	}
	return b.surfaceFailure()
}

func (b *Bridge) surfaceFailure() *schema.Failure {
	if b.platform == IOS {
		return schema.NewFailure(schema.NoViewController, "Cannot find root view controller.", nil)
	}
	return schema.NewFailure(schema.NoActivity, "Activity is null. Ensure plugin is attached to an Activity.", nil)
}

func (b *Bridge) checkInitialized() error {
	if b.Initialized() {
		return nil
	}
	return schema.NewFailure(schema.SDKNotInitialized, "SDK not initialized. Please call initialize first.", nil)
}

func (b *Bridge) checkAndroid(method string) error {
	if b.platform == Android {
		return nil
	}
	return schema.NewUnsupported(schema.Unsupported, method, androidOnly)
}

func (b *Bridge) checkContacts(ctx context.Context, method string) error {
	if err := b.checkInitialized(); err != nil {
		return err
	}
	if !b.sdk.Supports(ctx, sdk.CapabilityContacts) {
		return schema.NewUnsupported(schema.UnsupportedContacts, method, "share to contacts is not supported by the installed Douyin")
	}
	return nil
}

// release deletes scratch copies once the vendor outcome arrived; the caller context may be cancelled by now.
func (b *Bridge) release(ctx context.Context, items []*locator.Normalized) {
	if len(items) == 0 {
		return
	}
	b.normalizer.Release(context.WithoutCancel(ctx), items...)
}

func references(items []*locator.Normalized) []string {
	ret := make([]string, len(items))
	for i, item := range items {
		ret[i] = item.Reference
	}
	return ret
}
