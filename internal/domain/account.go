package domain

import "time"

// Account is the aggregate root: credentials, verification state and the embedded inbox.
// Messages live inside the account document; there is no separate message table.
type Account struct {
	AccountID        string    `json:"id" dynamodbav:"account_id"`
	Username         string    `json:"username" dynamodbav:"username"`
	Email            string    `json:"email" dynamodbav:"email"`
	PasswordHash     string    `json:"-" dynamodbav:"password_hash"`
	VerifyCode       string    `json:"-" dynamodbav:"verify_code"`
	VerifyCodeExpiry time.Time `json:"-" dynamodbav:"verify_code_expiry"`
	IsVerified       bool      `json:"isVerified" dynamodbav:"is_verified"`
	AcceptsMessages  bool      `json:"isAcceptingMessages" dynamodbav:"accepts_messages"`
	Messages         []Message `json:"messages" dynamodbav:"messages"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// Message is an anonymous note owned by exactly one Account.
type Message struct {
	MessageID string    `json:"id" dynamodbav:"message_id"`
	Content   string    `json:"content" dynamodbav:"content"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// Profile is the public view of an account behind a shareable link.
type Profile struct {
	Username            string `json:"username"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type VerifyCodeRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required,len=6"`
}

type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
}

type SendMessageRequest struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"required,min=10,max=300"`
}

type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"acceptMessages" validate:"required"`
}
