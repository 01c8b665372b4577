package schema

type (
	// Result is the default successful response.
	Result struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}

	AuthorizeResult struct {
		Success            bool     `json:"success"`
		AuthCode           string   `json:"authCode"`
		GrantedPermissions []string `json:"grantedPermissions"`
		State              string   `json:"state"`
	}
)

// NewResult returns a successful result
func NewResult(message string) *Result {
	return &Result{Success: true, Message: message}
}
