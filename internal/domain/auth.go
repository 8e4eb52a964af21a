package domain

import "fmt"

// AdminLogin is the credential payload exchanged for a bearer token.
type AdminLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminToken is the login response from the remote API. The token is
// opaque to this application and only ever forwarded back as a
// bearer header.
type AdminToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// FieldError reports a form field rejected by local validation,
// before any network call is attempted.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func ErrFieldRequired(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

func ErrFieldInvalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
