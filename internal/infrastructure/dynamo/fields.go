package dynamo

// DynamoDB attribute and index names used in key, condition and update expressions.
const (
	fieldAccountID  = "account_id"
	fieldUsername   = "username"
	fieldEmail      = "email"
	fieldIsVerified = "is_verified"
	fieldMessages   = "messages"
	fieldMessageID  = "message_id"
	fieldUpdatedAt  = "updated_at"

	indexUsername = "username-index"
	indexEmail    = "email-index"
)
