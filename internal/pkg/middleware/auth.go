package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisite/cms/internal/pkg/env"
	icuser "github.com/medisite/cms/internal/pkg/usercontext"
)

// AdminUsers maps the admin username from ADMIN_USER to a bcrypt hash.
// ADMIN_PASSWORD_HASH is used as is; a plain ADMIN_PASSWORD is hashed once
// here. Without either nobody is admitted.
func AdminUsers() map[string]string {
	user := env.GetEnv("ADMIN_USER", "admin")
	if hash := env.GetEnv("ADMIN_PASSWORD_HASH", ""); hash != "" {
		return map[string]string{user: hash}
	}
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if password == "" {
		return map[string]string{}
	}
	hash, err := HashPassword(password)
	if err != nil {
		zap.L().Error("failed to hash ADMIN_PASSWORD", zap.Error(err))
		return map[string]string{}
	}
	return map[string]string{user: hash}
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// bcryptAuthorizer admits a user whose password matches the stored hash.
func bcryptAuthorizer(users map[string]string) func(string, string) bool {
	return func(user, password string) bool {
		hash, ok := users[user]
		if !ok {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
}

// RequireAdmin guards web admin routes with basic auth. users maps
// usernames to bcrypt hashes.
func RequireAdmin(users map[string]string) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Authorizer:      bcryptAuthorizer(users),
		Realm:           "CMS Admin",
		ContextUsername: icuser.KeyUsername,
		ContextPassword: icuser.KeyPassword,
	})
}

// RequireAPIAdmin guards mutating API routes with basic auth and answers
// JSON 401 instead of a browser challenge.
func RequireAPIAdmin(users map[string]string) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Authorizer:      bcryptAuthorizer(users),
		Realm:           "CMS API",
		ContextUsername: icuser.KeyUsername,
		ContextPassword: icuser.KeyPassword,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `basic realm="CMS API"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "login required",
			})
		},
	})
}

// UserContextMiddleware turns the username left by basic auth into the
// request's user context. Requests without one stay anonymous.
func UserContextMiddleware(c *fiber.Ctx) error {
	username, _ := c.Locals(icuser.KeyUsername).(string)
	if username == "" {
		icuser.SetUserContext(c, icuser.UserContext{})
		return c.Next()
	}
	icuser.SetUserContext(c, icuser.UserContext{
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    true,
	})
	return c.Next()
}
