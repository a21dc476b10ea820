package handler

const (
	// APIRootPath is the common prefix of all API routes.
	APIRootPath = "/api"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// DefaultPageSize for paginated search endpoints.
	DefaultPageSize = 20
)
