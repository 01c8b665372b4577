package sdk

import (
	"github.com/cockroachdb/errors"
	"github.com/viant/dyopen/schema"
)

// ErrUnknownCallback is returned for a callback payload of an unknown type.
var ErrUnknownCallback = errors.New("sdk: unknown callback type")

// FromCallback decodes a host callback payload into its response variant.
func FromCallback(callback *schema.CallbackResponse) (Response, error) {
	base := BaseResponse{ErrorCode: callback.ErrorCode, SubErrorCode: callback.SubErrorCode, ErrorMsg: callback.ErrorMsg}
	switch callback.Type {
	case schema.CallbackAuthorization:
		return &AuthorizationResponse{
			BaseResponse:       base,
			AuthCode:           callback.AuthCode,
			State:              callback.State,
			GrantedPermissions: callback.GrantedPermissions,
		}, nil
	case schema.CallbackShare:
		return &ShareResponse{BaseResponse: base, State: callback.State}, nil
	case schema.CallbackShareToContact:
		return &ShareToContactResponse{BaseResponse: base}, nil
	case schema.CallbackOpenRecord:
		return &OpenRecordResponse{BaseResponse: base}, nil
	}
	return nil, errors.Wrapf(ErrUnknownCallback, "%q", callback.Type)
}

// ToCallback encodes a response variant as a host callback payload.
func ToCallback(response Response) *schema.CallbackResponse {
	code, subCode, message := response.Status()
	ret := &schema.CallbackResponse{Type: response.Kind().String(), ErrorCode: code, SubErrorCode: subCode, ErrorMsg: message}
	switch actual := response.(type) {
	case *AuthorizationResponse:
		ret.AuthCode = actual.AuthCode
		ret.State = actual.State
		ret.GrantedPermissions = actual.GrantedPermissions
	case *ShareResponse:
		ret.State = actual.State
	}
	return ret
}
