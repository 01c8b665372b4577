package failure

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/viant/dyopen/correlator"
	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
)

func TestFromVendor(t *testing.T) {
	var testCases = []struct {
		description string
		kind        correlator.Kind
		code        int
		subCode     int
		message     string
		expectCode  string
		expectMsg   string
	}{
		{description: "auth denied", kind: correlator.Authorization, code: VendorAuthDenied, message: "denied", expectCode: schema.AuthFailed, expectMsg: "Authorization failed: denied"},
		{description: "auth cancelled", kind: correlator.Authorization, code: VendorUserCancel, expectCode: schema.AuthCancelled, expectMsg: "Authorization failed"},
		{description: "share failed", kind: correlator.Share, code: VendorSendFailed, subCode: 20015, message: "bad media", expectCode: schema.ShareFailed, expectMsg: "Share failed: bad media"},
		{description: "share cancelled", kind: correlator.Share, code: VendorUserCancel, message: "cancelled", expectCode: schema.ShareCancelled, expectMsg: "Share failed: cancelled"},
		{description: "contact failed", kind: correlator.ShareToContact, code: VendorCommon, expectCode: schema.ShareImError, expectMsg: "Share to contact failed"},
		{description: "record failed", kind: correlator.OpenRecord, code: VendorUnsupported, expectCode: schema.OpenRecordError, expectMsg: "Open record failed"},
		{description: "unknown kind", kind: correlator.Kind(99), code: VendorCommon, expectCode: schema.UnknownError, expectMsg: "Request failed"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual := FromVendor(testCase.kind, testCase.code, testCase.subCode, testCase.message)
			assert.Equal(t, testCase.expectCode, actual.Code)
			assert.Equal(t, testCase.expectMsg, actual.Message)
			assert.Equal(t, testCase.code, actual.Details["errorCode"])
			assert.Equal(t, testCase.message, actual.Details["errorMsg"])
			if testCase.subCode != 0 {
				assert.Equal(t, testCase.subCode, actual.Details["subErrorCode"])
			} else {
				assert.NotContains(t, actual.Details, "subErrorCode")
			}
		})
	}
}

func TestFromError(t *testing.T) {
	var testCases = []struct {
		description string
		err         error
		code        string
		expectCode  string
	}{
		{description: "not found", err: errors.Wrap(locator.ErrNotFound, "/a.jpg"), code: schema.ShareError, expectCode: schema.FileNotFound},
		{description: "invalid", err: errors.Wrap(locator.ErrInvalidLocator, "ftp://x"), code: schema.ShareError, expectCode: schema.InvalidFilePath},
		{description: "copy", err: errors.Mark(errors.New("io"), locator.ErrCopyFailed), code: schema.ShareError, expectCode: schema.FileCopyFailed},
		{description: "provider", err: errors.Mark(errors.New("revoked"), locator.ErrProvider), code: schema.ShareError, expectCode: schema.ProviderURIFailed},
		{description: "failure passthrough", err: errors.Wrap(schema.NewBadArgs("media is required.", "media"), "share"), code: schema.ShareError, expectCode: schema.BadArgs},
		{description: "pending", err: errors.Wrap(correlator.ErrAlreadyPending, "share"), code: schema.ShareError, expectCode: schema.ShareError},
		{description: "generic", err: errors.New("boom"), code: schema.InitError, expectCode: schema.InitError},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual := FromError(testCase.code, testCase.err)
			assert.Equal(t, testCase.expectCode, actual.Code)
			assert.NotEmpty(t, actual.Message)
		})
	}
	assert.Nil(t, FromError(schema.InitError, nil))
}

func TestFromError_SurfacesCause(t *testing.T) {
	err := errors.Mark(errors.Wrap(errors.New("permission revoked"), "grant"), locator.ErrProvider)
	actual := FromError(schema.ShareError, err)
	assert.Equal(t, schema.ProviderURIFailed, actual.Code)
	assert.Equal(t, "permission revoked", actual.Details["cause"])
}

func TestRecode(t *testing.T) {
	vendor := FromVendor(correlator.ShareToContact, VendorCommon, 0, "boom")
	recoded := Recode(correlator.ShareToContact, vendor, schema.ShareHtmlImError)
	assert.Equal(t, schema.ShareHtmlImError, recoded.Code)
	assert.Equal(t, vendor.Details, recoded.Details)
	assert.Equal(t, schema.ShareImError, vendor.Code)

	userCancel := FromVendor(correlator.Share, VendorUserCancel, 0, "")
	assert.Equal(t, schema.ShareCancelled, Recode(correlator.Share, userCancel, schema.ShareDailyError).Code)

	cancelled := correlator.Cancelled(schema.RequestCancelled, correlator.Share).Failure
	assert.Equal(t, schema.RequestCancelled, Recode(correlator.Share, cancelled, schema.ShareDailyError).Code)
	assert.Nil(t, Recode(correlator.Share, nil, schema.ShareDailyError))
}
