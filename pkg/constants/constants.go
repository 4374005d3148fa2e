package constants

// Keys set on the gin context by middleware.Secured.
const (
	Token    = "token"
	UserID   = "user_id"
	UserName = "user_name"
	UserRole = "user_role"
)
