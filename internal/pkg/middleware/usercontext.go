package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/picpatch/PicPatch/internal/pkg/session"
	"github.com/picpatch/PicPatch/internal/pkg/usercontext"
)

// Session keys written by the auth controller on login.
const (
	SessionKeyUserID   = "USER_ID"
	SessionKeyUsername = "USER_NAME"
	SessionKeyIsAdmin  = "USER_IS_ADMIN"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request so that controllers never talk to the session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := func() error {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{})
		c.Locals(usercontext.KeyFromProtected, false)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		return anonymous()
	}
	sess, err := store.Get(c)
	if err != nil {
		return anonymous()
	}

	userID := sess.Get(SessionKeyUserID)
	if userID == nil {
		return anonymous()
	}
	uid, ok := userID.(uint)
	if !ok {
		return anonymous()
	}

	username, _ := sess.Get(SessionKeyUsername).(string)
	isAdmin, _ := sess.Get(SessionKeyIsAdmin).(bool)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}
