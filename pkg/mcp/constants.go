package mcp

type contextKey string

const (
	// ContextKeySessionToken is the key used to store/retrieve the Salesforce
	// session token from context
	ContextKeySessionToken contextKey = "sf_session_token"
)
