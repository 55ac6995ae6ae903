package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fablab/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "fablab.actor"

var (
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrInvalidSubject     = errors.New("token subject is not a valid id")
)

// Claims is the token payload understood by the identity middleware.
// The subject carries the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Staff bool   `json:"staff,omitempty"`
	jwt.RegisteredClaims
}

// Identity verifies HS256 bearer tokens and turns them into kernel.Actor.
type Identity struct {
	secret []byte
}

func NewIdentity(secret string) *Identity {
	return &Identity{secret: []byte(secret)}
}

// Sign issues a token for the actor. Used by the token command and tests.
func (i *Identity) Sign(actor kernel.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: actor.Email(),
		Staff: actor.IsStaff(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates the token and returns the actor it names.
func (i *Identity) Parse(tokenString string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidSubject, err)
	}
	return kernel.NewActor(id, claims.Email, claims.Staff)
}

// Middleware rejects requests without a valid bearer token with 401.
func (i *Identity) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			actor, err := i.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingBearerToken
	}
	return strings.TrimSpace(token), nil
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, ErrMissingBearerToken.Error())
	}
	return actor, nil
}
