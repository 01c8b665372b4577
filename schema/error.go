package schema

import (
	"fmt"
)

// Error codes reported to callers in Failure.Code.
const (
	// initialization
	InitError        = "INIT_ERROR"
	NoContext        = "NO_CONTEXT"
	InvalidClientKey = "INVALID_CLIENT_KEY"

	// host surface
	NoActivity       = "NO_ACTIVITY"
	NoViewController = "NO_VIEW_CONTROLLER"

	// arguments
	BadArgs = "BAD_ARGS"

	// files
	FileNotFound      = "FILE_NOT_FOUND"
	FileCopyFailed    = "FILE_COPY_FAILED"
	InvalidFilePath   = "INVALID_FILE_PATH"
	ProviderURIFailed = "PROVIDER_URI_FAILED"

	// vendor api
	APIError           = "API_ERROR"
	DouyinNotInstalled = "DOUYIN_NOT_INSTALLED"
	SDKNotInitialized  = "SDK_NOT_INITIALIZED"

	// authorization
	AuthError         = "AUTH_ERROR"
	AuthFailed        = "AUTH_FAILED"
	AuthCancelled     = "AUTH_CANCELLED"
	AuthStateMismatch = "AUTH_STATE_MISMATCH"

	// share
	ShareError       = "SHARE_ERROR"
	ShareFailed      = "SHARE_FAILED"
	ShareCancelled   = "SHARE_CANCELLED"
	ShareDailyError  = "SHARE_DAILY_ERROR"
	ShareImError     = "SHARE_IM_ERROR"
	ShareHtmlImError = "SHARE_HTML_IM_ERROR"
	OpenRecordError  = "OPEN_RECORD_ERROR"

	// capability
	Unsupported         = "UNSUPPORTED"
	UnsupportedDaily    = "UNSUPPORTED_DAILY"
	UnsupportedContacts = "UNSUPPORTED_CONTACTS"
	UnsupportedRecord   = "UNSUPPORTED_RECORD"
	UnsupportedAlbum    = "UNSUPPORTED_ALBUM"

	// correlation
	RequestSuperseded = "REQUEST_SUPERSEDED"
	RequestCancelled  = "REQUEST_CANCELLED"

	UnknownError = "UNKNOWN_ERROR"
)

// Class groups failure codes by when they are detected.
type Class int

const (
	ClassUnknown Class = iota
	ClassArgument
	ClassState
	ClassCapability
	ClassVendor
	ClassResource
)

// JSON-RPC error codes used per class; argument errors reuse the standard invalid params code.
const (
	RPCInvalidParams = -32602
	RPCState         = -32010
	RPCCapability    = -32011
	RPCVendor        = -32012
	RPCResource      = -32013
	RPCInternal      = -32603
)

var classes = map[string]Class{
	BadArgs:             ClassArgument,
	InvalidClientKey:    ClassArgument,
	NoContext:           ClassState,
	NoActivity:          ClassState,
	NoViewController:    ClassState,
	SDKNotInitialized:   ClassState,
	Unsupported:         ClassCapability,
	UnsupportedDaily:    ClassCapability,
	UnsupportedContacts: ClassCapability,
	UnsupportedRecord:   ClassCapability,
	UnsupportedAlbum:    ClassCapability,
	DouyinNotInstalled:  ClassCapability,
	AuthFailed:          ClassVendor,
	AuthCancelled:       ClassVendor,
	AuthStateMismatch:   ClassVendor,
	ShareFailed:         ClassVendor,
	ShareCancelled:      ClassVendor,
	ShareDailyError:     ClassVendor,
	ShareImError:        ClassVendor,
	ShareHtmlImError:    ClassVendor,
	OpenRecordError:     ClassVendor,
	RequestSuperseded:   ClassVendor,
	RequestCancelled:    ClassVendor,
	FileNotFound:        ClassResource,
	FileCopyFailed:      ClassResource,
	InvalidFilePath:     ClassResource,
	ProviderURIFailed:   ClassResource,
}

// Failure is the normalized {code, message, details} error shape.
type Failure struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (f *Failure) Error() string {
	return f.Code + ": " + f.Message
}

// Class returns the failure class of the code.
func (f *Failure) Class() Class {
	return classes[f.Code]
}

// RPCCode returns the JSON-RPC error code for the failure class.
func (f *Failure) RPCCode() int {
	switch f.Class() {
	case ClassArgument:
		return RPCInvalidParams
	case ClassState:
		return RPCState
	case ClassCapability:
		return RPCCapability
	case ClassVendor:
		return RPCVendor
	case ClassResource:
		return RPCResource
	}
	return RPCInternal
}

// WithDetail sets a detail entry and returns the failure.
func (f *Failure) WithDetail(key string, value any) *Failure {
	if f.Details == nil {
		f.Details = map[string]any{}
	}
	f.Details[key] = value
	return f
}

// NewFailure creates a failure
func NewFailure(code, message string, details map[string]any) *Failure {
	return &Failure{Code: code, Message: message, Details: details}
}

// NewBadArgs creates an argument failure, param is optional
func NewBadArgs(message string, param string) *Failure {
	ret := &Failure{Code: BadArgs, Message: message}
	if param != "" {
		ret.WithDetail("parameterName", param)
	}
	return ret
}

// NewUnsupported creates a capability failure for the api
func NewUnsupported(code, api, reason string) *Failure {
	return &Failure{
		Code:    code,
		Message: fmt.Sprintf("api not supported: %v - %v", api, reason),
		Details: map[string]any{"apiName": api, "reason": reason},
	}
}

// NewFromError wraps an unexpected error under the code.
func NewFromError(code string, err error) *Failure {
	if err == nil {
		return &Failure{Code: code, Message: "unknown error"}
	}
	return &Failure{Code: code, Message: err.Error()}
}
