package cmd

type contextKey string

const (
	ContextKeyAPIClient       contextKey = "api-client"
	ContextKeySessionStore    contextKey = "session-store"
	ContextKeyFileSystem      contextKey = "file-system"
	ContextKeyUserInfo        contextKey = "user-info"
	ContextKeyConfig          contextKey = "config"
	ContextKeyConfigStore     contextKey = "config-store"
	ContextKeyDisableFileLogs contextKey = "disable-file-logs"
)
