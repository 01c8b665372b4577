package sdk

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/schema"
)

var (
	// ErrUnsupported is returned by SDKs lacking a request type.
	ErrUnsupported = errors.New("sdk: unsupported request")
	// ErrDetached is returned while no host context is available.
	ErrDetached = errors.New("sdk: host not attached")
)

// Capability is a feature an installed vendor application may support.
type Capability string

const (
	CapabilityDaily    Capability = "share.daily"
	CapabilityContacts Capability = "contacts"
	CapabilityRecord   Capability = "record"
	CapabilityAlbum    Capability = "album"
)

// Landed page of a share on iOS.
const (
	LandedPageEdit    = "edit"
	LandedPagePublish = "publish"
)

// Share target types.
const (
	ShareToPublish = 0
	ShareToDaily   = 1
)

// SDK is the vendor SDK surface used by the bridge. Request methods return once the
// request was handed to the vendor; the outcome arrives later through a Receiver.
type SDK interface {
	Init(ctx context.Context, clientKey string, debug bool) error
	Version() string
	Installed(ctx context.Context) bool
	Supports(ctx context.Context, capability Capability) bool
	// Attached reports whether a host UI surface is available.
	Attached() bool
	Authorize(ctx context.Context, request *AuthorizeRequest) error
	Share(ctx context.Context, request *ShareRequest) error
	ShareToContact(ctx context.Context, request *ContactRequest) error
	OpenRecord(ctx context.Context, request *RecordRequest) error
}

// Receiver accepts vendor callbacks
type Receiver interface {
	Receive(ctx context.Context, response Response)
}

// Surface is implemented by SDKs tracking host UI surface attach and detach events.
type Surface interface {
	SetSurface(attached bool)
}

// Binder is implemented by SDKs delivering callbacks in process.
type Binder interface {
	Bind(receiver Receiver)
}

// ReceiverFunc adapts a function to Receiver
type ReceiverFunc func(ctx context.Context, response Response)

// Receive calls fn
func (fn ReceiverFunc) Receive(ctx context.Context, response Response) {
	fn(ctx, response)
}

type (
	AuthorizeRequest struct {
		Scope            string `json:"scope"`
		State            string `json:"state"`
		CallerLocalEntry string `json:"callerLocalEntry,omitempty"`
	}

	// ShareRequest carries both the Android media references and the iOS local identifiers.
	ShareRequest struct {
		MediaType        string               `json:"mediaType"`
		Media            []string             `json:"media"`
		Album            bool                 `json:"album,omitempty"`
		ShareID          string               `json:"shareId,omitempty"`
		ShareToType      int                  `json:"shareToType"`
		NewShare         bool                 `json:"newShare,omitempty"`
		LandedPage       string               `json:"landedPage,omitempty"`
		HashTags         []string             `json:"hashTags,omitempty"`
		MicroAppInfo     *schema.MicroAppInfo `json:"microAppInfo,omitempty"`
		ShareParam       *schema.ShareParam   `json:"shareParam,omitempty"`
		ExtraInfo        map[string]any       `json:"extraInfo,omitempty"`
		CallerLocalEntry string               `json:"callerLocalEntry,omitempty"`
	}

	// ContactRequest shares an image or an html card to a contact.
	ContactRequest struct {
		Media            []string           `json:"media,omitempty"`
		Html             *schema.HtmlObject `json:"html,omitempty"`
		ShareID          string             `json:"shareId,omitempty"`
		CallerLocalEntry string             `json:"callerLocalEntry,omitempty"`
	}

	// GrantRequest asks the host to grant read access on a provider reference to vendor packages.
	GrantRequest struct {
		Reference string   `json:"reference"`
		Packages  []string `json:"packages"`
	}

	RecordRequest struct {
		ShareID          string               `json:"shareId,omitempty"`
		HashTags         []string             `json:"hashTags,omitempty"`
		MicroAppInfo     *schema.MicroAppInfo `json:"microAppInfo,omitempty"`
		ShareParam       *schema.ShareParam   `json:"shareParam,omitempty"`
		CallerLocalEntry string               `json:"callerLocalEntry,omitempty"`
	}
)

// Response is a vendor callback, one variant per request kind.
type Response interface {
	Kind() correlator.Kind
	// Status returns the vendor error code, sub code and message.
	Status() (code int, subCode int, message string)
}

// BaseResponse is the status shared by all variants
type BaseResponse struct {
	ErrorCode    int    `json:"errorCode"`
	SubErrorCode int    `json:"subErrorCode,omitempty"`
	ErrorMsg     string `json:"errorMsg,omitempty"`
}

// Status returns the vendor status
func (b BaseResponse) Status() (int, int, string) {
	return b.ErrorCode, b.SubErrorCode, b.ErrorMsg
}

// Succeeded reports a zero vendor error code
func (b BaseResponse) Succeeded() bool {
	return b.ErrorCode == 0
}

type (
	AuthorizationResponse struct {
		BaseResponse
		AuthCode           string   `json:"authCode,omitempty"`
		State              string   `json:"state,omitempty"`
		GrantedPermissions []string `json:"grantedPermissions,omitempty"`
	}

	ShareResponse struct {
		BaseResponse
		State string `json:"state,omitempty"`
	}

	ShareToContactResponse struct {
		BaseResponse
	}

	OpenRecordResponse struct {
		BaseResponse
	}
)

func (*AuthorizationResponse) Kind() correlator.Kind  { return correlator.Authorization }
func (*ShareResponse) Kind() correlator.Kind          { return correlator.Share }
func (*ShareToContactResponse) Kind() correlator.Kind { return correlator.ShareToContact }
func (*OpenRecordResponse) Kind() correlator.Kind     { return correlator.OpenRecord }
