// Package failure maps vendor callback codes and internal errors onto schema.Failure.
package failure

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
)

// Vendor error codes reported in callback responses.
const (
	VendorSuccess     = 0
	VendorCommon      = -1
	VendorUserCancel  = -2
	VendorSendFailed  = -3
	VendorAuthDenied  = -4
	VendorUnsupported = -5
)

type codes struct {
	failed    string
	cancelled string
	message   string
}

var byKind = map[correlator.Kind]codes{
	correlator.Authorization:  {failed: schema.AuthFailed, cancelled: schema.AuthCancelled, message: "Authorization failed"},
	correlator.Share:          {failed: schema.ShareFailed, cancelled: schema.ShareCancelled, message: "Share failed"},
	correlator.ShareToContact: {failed: schema.ShareImError, cancelled: schema.ShareCancelled, message: "Share to contact failed"},
	correlator.OpenRecord:     {failed: schema.OpenRecordError, cancelled: schema.ShareCancelled, message: "Open record failed"},
}

// FromVendor maps a vendor callback error. Code and message are kept verbatim in details.
func FromVendor(kind correlator.Kind, code, subCode int, message string) *schema.Failure {
	mapping, ok := byKind[kind]
	if !ok {
		mapping = codes{failed: schema.UnknownError, cancelled: schema.UnknownError, message: "Request failed"}
	}
	result := &schema.Failure{Code: mapping.failed, Message: mapping.message}
	if code == VendorUserCancel {
		result.Code = mapping.cancelled
	}
	if message != "" {
		result.Message = fmt.Sprintf("%v: %v", mapping.message, message)
	}
	result.WithDetail("errorCode", code)
	result.WithDetail("errorMsg", message)
	if subCode != 0 {
		result.WithDetail("subErrorCode", subCode)
	}
	return result
}

// Recode sets code on a vendor failure resolved for kind so the calling method reports its own failure code.
// User cancellations and correlation failures keep their code.
func Recode(kind correlator.Kind, f *schema.Failure, code string) *schema.Failure {
	mapping, ok := byKind[kind]
	if f == nil || !ok || code == "" || f.Code != mapping.failed || f.Code == code {
		return f
	}
	ret := *f
	ret.Code = code
	return &ret
}

// FromError maps err onto a failure, code is used when err carries no failure of its own.
func FromError(code string, err error) *schema.Failure {
	if err == nil {
		return nil
	}
	var failure *schema.Failure
	if errors.As(err, &failure) {
		return failure
	}
	switch {
	case errors.Is(err, locator.ErrNotFound):
		code = schema.FileNotFound
	case errors.Is(err, locator.ErrInvalidLocator):
		code = schema.InvalidFilePath
	case errors.Is(err, locator.ErrCopyFailed):
		code = schema.FileCopyFailed
	case errors.Is(err, locator.ErrProvider):
		code = schema.ProviderURIFailed
	case errors.Is(err, correlator.ErrAlreadyPending):
		return schema.NewFailure(code, err.Error(), map[string]any{"reason": "pending"})
	}
	ret := schema.NewFromError(code, err)
	if cause := errors.UnwrapAll(err); cause != nil && cause.Error() != err.Error() {
		ret.WithDetail("cause", cause.Error())
	}
	return ret
}
