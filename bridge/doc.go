// Package bridge implements the dispatch logic between the application layer and the
// vendor SDK.
//
// Every operation validates its arguments, checks the host state and the vendor
// capability, normalizes media locators and then issues the vendor request through a
// correlator slot. Operations needing a vendor outcome wait until the SDK delivers the
// callback through Receive, or until the caller context is cancelled.
//
// Errors returned by operations are *schema.Failure values:
//
//	result, err := aBridge.ShareImages(ctx, &schema.ShareParams{Media: []string{"/sdcard/a.jpg"}})
//	if err != nil {
//		failure := err.(*schema.Failure)
//		log.Println(failure.Code)
//	}
package bridge
