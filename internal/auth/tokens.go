package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie that carries the session token.
const CookieName = "jwt"

var ErrMissingSecret = errors.New("token signing secret is empty")

// Claims is the JWT payload. UserID is serialized as "userId".
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens and manages the session
// cookie. It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewTokenIssuer(secret []byte, ttl time.Duration, secure bool) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenIssuer{secret: secret, ttl: ttl, secure: secure}, nil
}

// TTL returns the lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a new HS256 token for userID.
func (t *TokenIssuer) Issue(userID string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies signature, algorithm and expiry. Every failure is
// reported as ErrInvalidToken; the cause is wrapped for logging.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueCookie signs a token for userID and attaches it to the response.
func (t *TokenIssuer) IssueCookie(c *gin.Context, userID string) error {
	token, _, err := t.Issue(userID)
	if err != nil {
		return err
	}
	t.SetCookie(c, token)
	return nil
}

func (t *TokenIssuer) SetCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, t.cookie(token, int(t.ttl.Seconds())))
}

// ClearCookie expires the session cookie with the same attributes it was
// set with, so browsers match and drop it.
func (t *TokenIssuer) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, t.cookie("", -1))
}

func (t *TokenIssuer) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
