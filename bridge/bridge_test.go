package bridge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/dyopen/config"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
	"github.com/viant/dyopen/sdk"
	"github.com/viant/dyopen/sdk/simulator"
)

const (
	hostPackage   = "com.example.app"
	hostAuthority = "com.example.app.fileprovider"
	clientKey     = "aw_test-1"
)

type publisher struct {
	mux    sync.Mutex
	events map[string][]any
}

func (p *publisher) Publish(_ context.Context, method string, params any) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.events == nil {
		p.events = map[string][]any{}
	}
	p.events[method] = append(p.events[method], params)
	return nil
}

func (p *publisher) count(method string) int {
	p.mux.Lock()
	defer p.mux.Unlock()
	return len(p.events[method])
}

type fixture struct {
	dir        string
	scratchDir string
	normalizer *locator.Normalizer
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	scratchDir := filepath.Join(dir, "scratch")
	foreignDir := filepath.Join(dir, "foreign")
	require.NoError(t, os.MkdirAll(scratchDir, 0o755))
	require.NoError(t, os.MkdirAll(foreignDir, 0o755))
	for _, name := range []string{"a.jpg", "b.jpg", "c.mp4", "sticker.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(foreignDir, "d.jpg"), []byte("foreign"), 0o644))
	fs := afs.New()
	resolver := locator.NewMountResolver(fs).Mount("com.other.app", "file://localhost"+foreignDir)
	normalizer := locator.New(
		locator.WithFS(fs),
		locator.WithHostPackage(hostPackage),
		locator.WithProviders(&locator.Provider{Authority: hostAuthority, Roots: map[string]string{"files": dir, "scratch": scratchDir}}),
		locator.WithScratchURL("file://localhost"+scratchDir),
		locator.WithResolver(resolver),
	)
	return &fixture{dir: dir, scratchDir: scratchDir, normalizer: normalizer}
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func newBridge(t *testing.T, vendor sdk.SDK, initialize bool, options ...Option) *Bridge {
	ctx := context.Background()
	aBridge, err := New(ctx, vendor, options...)
	require.NoError(t, err)
	if initialize {
		_, err = aBridge.Initialize(ctx, &schema.InitializeParams{ClientKey: clientKey})
		require.NoError(t, err)
	}
	return aBridge
}

func failureCode(t *testing.T, err error) string {
	require.Error(t, err)
	var failure *schema.Failure
	require.True(t, errors.As(err, &failure), "expected failure, got %v", err)
	return failure.Code
}

func pending(aBridge *Bridge, kind correlator.Kind) func() bool {
	return func() bool {
		_, ok := aBridge.Correlator().Pending(kind)
		return ok
	}
}

func TestBridge_Initialize(t *testing.T) {
	var testCases = []struct {
		description string
		params      *schema.InitializeParams
		vendor      *simulator.Simulator
		expectCode  string
	}{
		{description: "empty client key", params: &schema.InitializeParams{}, expectCode: schema.BadArgs},
		{description: "missing params", expectCode: schema.BadArgs},
		{description: "invalid client key", params: &schema.InitializeParams{ClientKey: "aw 1!"}, expectCode: schema.InvalidClientKey},
		{description: "sdk failure", params: &schema.InitializeParams{ClientKey: clientKey},
			vendor: simulator.New(simulator.WithInitError(errors.New("config rejected"))), expectCode: schema.InitError},
		{description: "no host", params: &schema.InitializeParams{ClientKey: clientKey},
			vendor: simulator.New(simulator.WithInitError(sdk.ErrDetached)), expectCode: schema.NoContext},
		{description: "initialized", params: &schema.InitializeParams{ClientKey: clientKey, Debug: true}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			vendor := testCase.vendor
			if vendor == nil {
				vendor = simulator.New()
			}
			store := config.NewMemoryStore()
			aBridge := newBridge(t, vendor, false, WithStore(store))
			result, err := aBridge.Initialize(ctx, testCase.params)
			record, loadErr := store.Load(ctx)
			require.NoError(t, loadErr)
			if testCase.expectCode != "" {
				assert.Equal(t, testCase.expectCode, failureCode(t, err))
				assert.False(t, aBridge.Initialized())
				assert.False(t, record.Initialized)
				_, occupied := aBridge.Correlator().Pending(correlator.Authorization)
				assert.False(t, occupied)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.True(t, aBridge.Initialized())
			assert.Equal(t, &config.Record{ClientKey: clientKey, DebugMode: true, Initialized: true}, record)
			assert.Equal(t, clientKey, vendor.ClientKey())
		})
	}
}

func TestBridge_RestoreAndReset(t *testing.T) {
	ctx := context.Background()
	store := config.NewMemoryStore()
	require.NoError(t, store.Save(ctx, clientKey, false))
	vendor := simulator.New()
	aBridge := newBridge(t, vendor, false, WithStore(store))
	assert.True(t, aBridge.Initialized())
	assert.Equal(t, clientKey, vendor.ClientKey())

	result, err := aBridge.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, aBridge.Initialized())
	record, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, record.Initialized)

	_, err = aBridge.Authorize(ctx, nil)
	assert.Equal(t, schema.SDKNotInitialized, failureCode(t, err))
}

func TestBridge_Authorize(t *testing.T) {
	var testCases = []struct {
		description string
		platform    Platform
		options     []simulator.Option
		initialize  bool
		params      *schema.AuthorizeParams
		expectCode  string
		expectState string
		expectPerms []string
	}{
		{
			description: "state echoed",
			initialize:  true,
			params:      &schema.AuthorizeParams{Scope: "user_info,mobile", State: "abc"},
			expectState: "abc",
			expectPerms: []string{"user_info", "mobile"},
		},
		{
			description: "default scope",
			initialize:  true,
			expectPerms: []string{schema.DefaultScope},
		},
		{
			description: "user cancelled",
			initialize:  true,
			options:     []simulator.Option{simulator.WithScript(correlator.Authorization, simulator.Fail(-2, "cancel"))},
			expectCode:  schema.AuthCancelled,
		},
		{
			description: "denied",
			initialize:  true,
			options:     []simulator.Option{simulator.WithScript(correlator.Authorization, simulator.Fail(-4, "denied"))},
			expectCode:  schema.AuthFailed,
		},
		{
			description: "state mismatch",
			initialize:  true,
			params:      &schema.AuthorizeParams{State: "abc"},
			options: []simulator.Option{simulator.WithScript(correlator.Authorization, func(request any) sdk.Response {
				return &sdk.AuthorizationResponse{AuthCode: "X", State: "forged"}
			})},
			expectCode: schema.AuthStateMismatch,
		},
		{
			description: "not initialized",
			expectCode:  schema.SDKNotInitialized,
		},
		{
			description: "no activity",
			initialize:  true,
			options:     []simulator.Option{simulator.WithAttached(false)},
			expectCode:  schema.NoActivity,
		},
		{
			description: "no view controller",
			platform:    IOS,
			initialize:  true,
			options:     []simulator.Option{simulator.WithAttached(false)},
			expectCode:  schema.NoViewController,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			vendor := simulator.New(testCase.options...)
			aBridge := newBridge(t, vendor, testCase.initialize, WithPlatform(testCase.platform))
			result, err := aBridge.Authorize(ctx, testCase.params)
			_, occupied := aBridge.Correlator().Pending(correlator.Authorization)
			assert.False(t, occupied)
			if testCase.expectCode != "" {
				assert.Equal(t, testCase.expectCode, failureCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.NotEmpty(t, result.AuthCode)
			assert.Equal(t, testCase.expectPerms, result.GrantedPermissions)
			if testCase.expectState != "" {
				assert.Equal(t, testCase.expectState, result.State)
			} else {
				assert.NotEmpty(t, result.State)
			}
		})
	}
}

func TestBridge_ShareImages(t *testing.T) {
	fixture := newFixture(t)
	var testCases = []struct {
		description string
		params      *schema.ShareParams
		options     []simulator.Option
		expectCode  string
		expectMedia []string
		expectSent  bool
	}{
		{
			description: "local files",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg"), "file://" + fixture.path("b.jpg")}, ShareID: "s1"},
			expectMedia: []string{"content://" + hostAuthority + "/files/a.jpg", "content://" + hostAuthority + "/files/b.jpg"},
			expectSent:  true,
		},
		{
			description: "provider reference unchanged",
			params:      &schema.ShareParams{Media: []string{"content://" + hostAuthority + "/files/a.jpg"}},
			expectMedia: []string{"content://" + hostAuthority + "/files/a.jpg"},
			expectSent:  true,
		},
		{
			description: "missing file",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg"), fixture.path("missing.jpg")}},
			expectCode:  schema.FileNotFound,
		},
		{
			description: "unsupported scheme",
			params:      &schema.ShareParams{Media: []string{"https://example.com/a.jpg"}},
			expectCode:  schema.InvalidFilePath,
		},
		{
			description: "empty media",
			params:      &schema.ShareParams{},
			expectCode:  schema.BadArgs,
		},
		{
			description: "not installed",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg")}},
			options:     []simulator.Option{simulator.WithInstalled(false)},
			expectCode:  schema.DouyinNotInstalled,
		},
		{
			description: "album unsupported",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg")}, IsAlbum: true},
			options:     []simulator.Option{simulator.WithCapabilities(sdk.CapabilityDaily)},
			expectCode:  schema.UnsupportedAlbum,
		},
		{
			description: "vendor cancel",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg")}},
			options:     []simulator.Option{simulator.WithScript(correlator.Share, simulator.Fail(-2, "cancelled"))},
			expectCode:  schema.ShareCancelled,
			expectSent:  true,
		},
		{
			description: "vendor failure",
			params:      &schema.ShareParams{Media: []string{fixture.path("a.jpg")}},
			options:     []simulator.Option{simulator.WithScript(correlator.Share, simulator.Fail(3, "cancelled"))},
			expectCode:  schema.ShareFailed,
			expectSent:  true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			vendor := simulator.New(testCase.options...)
			aBridge := newBridge(t, vendor, true, WithNormalizer(fixture.normalizer))
			result, err := aBridge.ShareImages(ctx, testCase.params)
			requests := vendor.Requests()
			if testCase.expectSent {
				require.Len(t, requests, 1)
			} else {
				assert.Empty(t, requests)
			}
			if testCase.expectCode != "" {
				assert.Equal(t, testCase.expectCode, failureCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Images shared successfully", result.Message)
			request := requests[0].(*sdk.ShareRequest)
			assert.Equal(t, testCase.expectMedia, request.Media)
			assert.Equal(t, schema.MediaTypeImage, request.MediaType)
			assert.Equal(t, testCase.params.ShareID, request.ShareID)
			assert.Equal(t, sdk.ShareToPublish, request.ShareToType)
		})
	}
}

func TestBridge_ShareVideosForeignContent(t *testing.T) {
	ctx := context.Background()
	fixture := newFixture(t)
	vendor := simulator.New()
	aBridge := newBridge(t, vendor, true, WithNormalizer(fixture.normalizer))
	newShare := true
	result, err := aBridge.ShareVideos(ctx, &schema.ShareParams{
		Media:    []string{"content://com.other.app/d.jpg"},
		NewShare: &newShare,
		HashTags: []string{"go"},
		ShareParam: &schema.ShareParam{
			StickersObject: &schema.StickersObject{Stickers: []schema.Sticker{
				{Type: schema.StickerCustom},
				{Type: schema.StickerCustom, Path: fixture.path("sticker.png")},
				{Type: "unknown"},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Videos shared successfully", result.Message)
	request := vendor.Requests()[0].(*sdk.ShareRequest)
	require.Len(t, request.Media, 1)
	assert.True(t, strings.HasPrefix(request.Media[0], "content://"+hostAuthority+"/scratch/share_"), request.Media[0])
	assert.True(t, strings.HasSuffix(request.Media[0], ".jpg"))
	assert.True(t, request.NewShare)
	assert.Equal(t, []string{"go"}, request.HashTags)
	stickers := request.ShareParam.StickersObject.Stickers
	require.Len(t, stickers, 2)
	assert.Equal(t, request.Media[0], stickers[0].Path)
	assert.Equal(t, "content://"+hostAuthority+"/files/sticker.png", stickers[1].Path)
	assert.Empty(t, fixture.normalizer.Scratch())
	entries, err := os.ReadDir(fixture.scratchDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBridge_ShareIOS(t *testing.T) {
	ctx := context.Background()
	vendor := simulator.New()
	aBridge := newBridge(t, vendor, true, WithPlatform(IOS))
	microApp := &schema.MicroAppInfo{AppID: "tt1"}
	_, err := aBridge.ShareImages(ctx, &schema.ShareParams{
		Media:          []string{"PH-local-1", "PH-local-2"},
		MicroAppInfo:   microApp,
		HashTags:       []string{"go"},
		ShareToPublish: true,
		ShareParam:     &schema.ShareParam{ProductExtraInfoLegacy: map[string]any{"id": "p1"}},
	})
	require.NoError(t, err)
	request := vendor.Requests()[0].(*sdk.ShareRequest)
	assert.Equal(t, []string{"PH-local-1", "PH-local-2"}, request.Media)
	assert.Equal(t, sdk.LandedPagePublish, request.LandedPage)
	assert.Equal(t, map[string]any{
		"mpInfo":             microApp,
		"product_extra_info": map[string]any{"id": "p1"},
		"hashtag_list":       []string{"go"},
	}, request.ExtraInfo)

	_, err = aBridge.ShareVideos(ctx, &schema.ShareParams{Media: []string{"PH-local-3"}})
	require.NoError(t, err)
	request = vendor.Requests()[1].(*sdk.ShareRequest)
	assert.Equal(t, sdk.LandedPageEdit, request.LandedPage)
	assert.Nil(t, request.ExtraInfo)
}

func TestBridge_AndroidOnly(t *testing.T) {
	ctx := context.Background()
	fixture := newFixture(t)
	ios := newBridge(t, simulator.New(), true, WithPlatform(IOS))
	android := newBridge(t, simulator.New(simulator.WithCapabilities()), true, WithNormalizer(fixture.normalizer))

	var testCases = []struct {
		description string
		call        func(b *Bridge) error
		expectCode  string
	}{
		{
			description: "daily",
			call: func(b *Bridge) error {
				_, err := b.ShareDaily(ctx, &schema.DailyParams{Media: fixture.path("a.jpg"), MediaType: "image"})
				return err
			},
			expectCode: schema.UnsupportedDaily,
		},
		{
			description: "image to im",
			call: func(b *Bridge) error {
				_, err := b.ShareImageToIm(ctx, &schema.ImageToImParams{Media: fixture.path("a.jpg")})
				return err
			},
			expectCode: schema.UnsupportedContacts,
		},
		{
			description: "html to im",
			call: func(b *Bridge) error {
				_, err := b.ShareHtmlToIm(ctx, &schema.HtmlToImParams{HtmlObject: &schema.HtmlObject{Title: "t"}})
				return err
			},
			expectCode: schema.UnsupportedContacts,
		},
		{
			description: "record",
			call: func(b *Bridge) error {
				_, err := b.OpenRecord(ctx, nil)
				return err
			},
			expectCode: schema.UnsupportedRecord,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, schema.Unsupported, failureCode(t, testCase.call(ios)))
			assert.Equal(t, testCase.expectCode, failureCode(t, testCase.call(android)))
		})
	}
}

func TestBridge_AndroidExtras(t *testing.T) {
	ctx := context.Background()
	fixture := newFixture(t)
	vendor := simulator.New()
	aBridge := newBridge(t, vendor, true, WithNormalizer(fixture.normalizer), WithCallerLocalEntry("app.CallbackEntry"))

	_, err := aBridge.ShareDaily(ctx, &schema.DailyParams{Media: fixture.path("c.mp4"), MediaType: "VIDEO"})
	require.NoError(t, err)
	_, err = aBridge.ShareDaily(ctx, &schema.DailyParams{Media: fixture.path("c.mp4"), MediaType: "gif"})
	assert.Equal(t, schema.BadArgs, failureCode(t, err))
	_, err = aBridge.ShareImageToIm(ctx, &schema.ImageToImParams{Media: fixture.path("a.jpg"), ShareID: "im1"})
	require.NoError(t, err)
	_, err = aBridge.ShareImageToIm(ctx, &schema.ImageToImParams{})
	assert.Equal(t, schema.BadArgs, failureCode(t, err))
	_, err = aBridge.ShareHtmlToIm(ctx, &schema.HtmlToImParams{HtmlObject: &schema.HtmlObject{
		Title: "t", Discription: "legacy", URL: "https://example.com", CoverURL: "https://example.com/c.jpg",
	}})
	require.NoError(t, err)
	_, err = aBridge.ShareHtmlToIm(ctx, &schema.HtmlToImParams{})
	assert.Equal(t, schema.BadArgs, failureCode(t, err))
	_, err = aBridge.OpenRecord(ctx, &schema.OpenRecordParams{ShareID: "r1", HashTags: []string{"go"}})
	require.NoError(t, err)

	requests := vendor.Requests()
	require.Len(t, requests, 4)
	daily := requests[0].(*sdk.ShareRequest)
	assert.Equal(t, sdk.ShareToDaily, daily.ShareToType)
	assert.Equal(t, schema.MediaTypeVideo, daily.MediaType)
	assert.True(t, daily.NewShare)
	assert.Equal(t, "app.CallbackEntry", daily.CallerLocalEntry)
	image := requests[1].(*sdk.ContactRequest)
	assert.Equal(t, []string{"content://" + hostAuthority + "/files/a.jpg"}, image.Media)
	assert.Equal(t, "im1", image.ShareID)
	html := requests[2].(*sdk.ContactRequest)
	assert.Equal(t, &schema.HtmlObject{Title: "t", Description: "legacy", Html: "https://example.com", ThumbURL: "https://example.com/c.jpg"}, html.Html)
	record := requests[3].(*sdk.RecordRequest)
	assert.Equal(t, "r1", record.ShareID)
	assert.Equal(t, []string{"go"}, record.HashTags)
}

func TestBridge_VendorFailureCodes(t *testing.T) {
	ctx := context.Background()
	fixture := newFixture(t)
	var scripts []simulator.Option
	for _, kind := range correlator.Kinds() {
		scripts = append(scripts, simulator.WithScript(kind, simulator.Fail(-1, "boom")))
	}
	aBridge := newBridge(t, simulator.New(scripts...), true, WithNormalizer(fixture.normalizer))
	cancelled := newBridge(t, simulator.New(simulator.WithScript(correlator.ShareToContact, simulator.Fail(-2, "cancelled"))), true, WithNormalizer(fixture.normalizer))

	var testCases = []struct {
		description string
		call        func(b *Bridge) error
		expectCode  string
	}{
		{
			description: "authorize",
			call: func(b *Bridge) error {
				_, err := b.Authorize(ctx, &schema.AuthorizeParams{})
				return err
			},
			expectCode: schema.AuthFailed,
		},
		{
			description: "images",
			call: func(b *Bridge) error {
				_, err := b.ShareImages(ctx, &schema.ShareParams{Media: []string{fixture.path("a.jpg")}})
				return err
			},
			expectCode: schema.ShareFailed,
		},
		{
			description: "daily",
			call: func(b *Bridge) error {
				_, err := b.ShareDaily(ctx, &schema.DailyParams{Media: fixture.path("a.jpg"), MediaType: "image"})
				return err
			},
			expectCode: schema.ShareDailyError,
		},
		{
			description: "image to im",
			call: func(b *Bridge) error {
				_, err := b.ShareImageToIm(ctx, &schema.ImageToImParams{Media: fixture.path("a.jpg")})
				return err
			},
			expectCode: schema.ShareImError,
		},
		{
			description: "html to im",
			call: func(b *Bridge) error {
				_, err := b.ShareHtmlToIm(ctx, &schema.HtmlToImParams{HtmlObject: &schema.HtmlObject{Title: "t", URL: "https://example.com"}})
				return err
			},
			expectCode: schema.ShareHtmlImError,
		},
		{
			description: "record",
			call: func(b *Bridge) error {
				_, err := b.OpenRecord(ctx, nil)
				return err
			},
			expectCode: schema.OpenRecordError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.call(aBridge)
			assert.Equal(t, testCase.expectCode, failureCode(t, err))
			var failure *schema.Failure
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, schema.RPCVendor, failure.RPCCode())
			assert.EqualValues(t, -1, failure.Details["errorCode"])
		})
	}

	_, err := cancelled.ShareHtmlToIm(ctx, &schema.HtmlToImParams{HtmlObject: &schema.HtmlObject{Title: "t"}})
	assert.Equal(t, schema.ShareCancelled, failureCode(t, err))
}

func TestBridge_Cancellation(t *testing.T) {
	vendor := simulator.New(simulator.WithManual())
	aBridge := newBridge(t, vendor, true)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := aBridge.Authorize(ctx, &schema.AuthorizeParams{State: "abc"})
		done <- err
	}()
	require.Eventually(t, pending(aBridge, correlator.Authorization), time.Second, 5*time.Millisecond)
	cancel()
	assert.Equal(t, schema.RequestCancelled, failureCode(t, <-done))
	assert.False(t, pending(aBridge, correlator.Authorization)())

	events := &publisher{}
	aBridge.SetPublisher(events)
	require.NoError(t, vendor.Deliver(context.Background(), &sdk.AuthorizationResponse{AuthCode: "late", State: "abc"}))
	assert.Equal(t, 1, events.count(schema.MethodEventOrphanCallback))
}

func TestBridge_Supersede(t *testing.T) {
	ctx := context.Background()
	vendor := simulator.New(simulator.WithManual())
	aBridge := newBridge(t, vendor, true)
	first := make(chan error, 1)
	go func() {
		_, err := aBridge.Authorize(ctx, &schema.AuthorizeParams{State: "first"})
		first <- err
	}()
	require.Eventually(t, pending(aBridge, correlator.Authorization), time.Second, 5*time.Millisecond)

	second := make(chan *schema.AuthorizeResult, 1)
	go func() {
		result, err := aBridge.Authorize(ctx, &schema.AuthorizeParams{State: "second"})
		assert.NoError(t, err)
		second <- result
	}()
	assert.Equal(t, schema.RequestSuperseded, failureCode(t, <-first))
	require.Eventually(t, func() bool {
		binding, ok := aBridge.Correlator().Pending(correlator.Authorization)
		return ok && binding.Token == "second"
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, vendor.Deliver(ctx, &sdk.AuthorizationResponse{AuthCode: "X", State: "second"}))
	result := <-second
	require.NotNil(t, result)
	assert.Equal(t, "X", result.AuthCode)
	assert.Equal(t, "second", result.State)
}

func TestBridge_Reject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vendor := simulator.New(simulator.WithManual())
	aBridge := newBridge(t, vendor, true, WithPolicy(correlator.Reject))
	go func() { _, _ = aBridge.OpenRecord(ctx, nil) }()
	require.Eventually(t, pending(aBridge, correlator.OpenRecord), time.Second, 5*time.Millisecond)
	_, err := aBridge.OpenRecord(ctx, nil)
	assert.Equal(t, schema.OpenRecordError, failureCode(t, err))
}

func TestBridge_Events(t *testing.T) {
	ctx := context.Background()
	events := &publisher{}
	aBridge := newBridge(t, simulator.New(), false, WithPublisher(events))
	aBridge.Receive(ctx, &sdk.ShareResponse{BaseResponse: sdk.BaseResponse{ErrorCode: 3, ErrorMsg: "cancelled"}})
	aBridge.Receive(ctx, nil)
	assert.Equal(t, 1, events.count(schema.MethodEventOrphanCallback))

	aBridge.StayInDouyin(ctx, &schema.StayInDouyin{Action: schema.StayActionShare})
	aBridge.StayInDouyin(ctx, &schema.StayInDouyin{Action: "other"})
	assert.Equal(t, 1, events.count(schema.MethodEventStayInDouyin))
}

func TestBridge_Versions(t *testing.T) {
	ctx := context.Background()
	android := newBridge(t, simulator.New(), false, WithOSVersion("14"))
	assert.Equal(t, "Android 14", android.GetPlatformVersion())
	assert.Equal(t, simulator.Version, android.GetSDKVersion())
	assert.True(t, android.IsDouyinInstalled(ctx))

	ios := newBridge(t, simulator.New(simulator.WithVersion(""), simulator.WithInstalled(false)), false, WithPlatform(IOS), WithOSVersion("17.2"))
	assert.Equal(t, "iOS 17.2", ios.GetPlatformVersion())
	assert.Equal(t, "Unknown", ios.GetSDKVersion())
	assert.False(t, ios.IsDouyinInstalled(ctx))
}

func TestParsePlatform(t *testing.T) {
	platform, err := ParsePlatform("ios")
	require.NoError(t, err)
	assert.Equal(t, IOS, platform)
	platform, err = ParsePlatform("")
	require.NoError(t, err)
	assert.Equal(t, Android, platform)
	_, err = ParsePlatform("symbian")
	assert.Error(t, err)
}
