package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/inkwell/internal/model"
	"github.com/d60-Lab/inkwell/internal/service"
)

const (
	sessionCookie  = "inkwell_session"
	contextUserKey = "current_user"
)

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies the signed session cookie.
type Sessions struct {
	secret []byte
	maxAge time.Duration
}

func NewSessions(secret string, maxAge time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), maxAge: maxAge}
}

// Issue signs a session token for the user and sets the cookie.
func (s *Sessions) Issue(c *gin.Context, userID uint) error {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.maxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie, token, int(s.maxAge.Seconds()), "/", "", false, true)
	return nil
}

// Clear removes the session cookie.
func (s *Sessions) Clear(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

func (s *Sessions) userID(c *gin.Context) (uint, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return 0, false
	}
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, false
	}
	return claims.UserID, true
}

// CurrentUser resolves the session cookie to a user record when present.
// An anonymous request is a valid state and proceeds without a user.
func CurrentUser(sessions *Sessions, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessions.userID(c); ok {
			if user, err := users.GetByID(c.Request.Context(), id); err == nil {
				c.Set(contextUserKey, user)
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page with a next
// parameter pointing back at the original path.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			c.Redirect(http.StatusFound, "/auth/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user attached by CurrentUser.
func UserFrom(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
