package usercontext

// Shared Locals keys used across controllers and middlewares
const (
	KeyUserContext   = "USER_CONTEXT"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
)
