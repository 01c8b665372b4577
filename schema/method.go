package schema

const (
	MethodInitialize         = "initialize"
	MethodAuthorize          = "authorize"
	MethodShareImages        = "shareImages"
	MethodShareVideos        = "shareVideos"
	MethodShareDaily         = "shareDaily"
	MethodShareImageToIm     = "shareImageToIm"
	MethodShareHtmlToIm      = "shareHtmlToIm"
	MethodOpenRecord         = "openRecord"
	MethodIsDouyinInstalled  = "isDouyinInstalled"
	MethodGetPlatformVersion = "getPlatformVersion"
	MethodGetSDKVersion      = "getSDKVersion"
	MethodReset              = "reset"

	// notifications sent by the native host
	MethodCallbackResponse     = "callback/response"
	MethodCallbackStayInDouyin = "callback/stayInDouyin"
	MethodCallbackAttach       = "callback/attach"
	MethodCallbackDetach       = "callback/detach"
	MethodNotificationCancel   = "notifications/cancelled"

	// notifications sent to the application layer
	MethodEventStayInDouyin   = "events/stayInDouyin"
	MethodEventOrphanCallback = "events/orphanCallback"

	// vendor calls forwarded to the native host
	MethodSDKInit           = "sdk/init"
	MethodSDKVersion        = "sdk/version"
	MethodSDKInstalled      = "sdk/installed"
	MethodSDKSupports       = "sdk/supports"
	MethodSDKAttached       = "sdk/attached"
	MethodSDKAuthorize      = "sdk/authorize"
	MethodSDKShare          = "sdk/share"
	MethodSDKShareToContact = "sdk/shareToContact"
	MethodSDKOpenRecord     = "sdk/openRecord"
	MethodSDKGrant          = "sdk/grant"
)

// Methods lists every method of the dispatch surface.
var Methods = []string{
	MethodInitialize,
	MethodAuthorize,
	MethodShareImages,
	MethodShareVideos,
	MethodShareDaily,
	MethodShareImageToIm,
	MethodShareHtmlToIm,
	MethodOpenRecord,
	MethodIsDouyinInstalled,
	MethodGetPlatformVersion,
	MethodGetSDKVersion,
	MethodReset,
}
