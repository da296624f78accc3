package constants

// Context keys used by middleware and handlers.
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)

// SearchResultLimit caps name-substring workspace search results.
const SearchResultLimit = 20

// Roster grid bounds.
const (
	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1
	MaxDay   = 31
)
