package domain

// TokenClaims is the identity carried inside a signed session token.
type TokenClaims struct {
	AccountID       string
	Username        string
	IsVerified      bool
	AcceptsMessages bool
}

// SessionView is the identity exposed to clients for the current session.
type SessionView struct {
	AccountID           string `json:"id"`
	Username            string `json:"username"`
	IsVerified          bool   `json:"isVerified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}
