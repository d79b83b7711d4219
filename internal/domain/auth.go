package domain

// TokenPurpose namespaces signed tokens so one flow cannot replay another's.
type TokenPurpose string

const (
	TokenPurposeActivation    TokenPurpose = "account-activation"
	TokenPurposePasswordReset TokenPurpose = "password-reset"
)
