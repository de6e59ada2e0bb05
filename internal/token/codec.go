package token

import (
	"errors"
	"time"

	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every validation failure: bad signature, malformed
// structure, wrong algorithm, unknown role, expiry. Callers cannot tell which,
// so a failed token reveals nothing about why it failed.
var ErrInvalidToken = errors.New("invalid token")

// ExpirationWindow is how long an issued token stays valid. There is no
// revocation list; a token lives until this window closes.
const ExpirationWindow = 24 * time.Hour

// Claims is the decoded payload of a validated token. Read Email/Identity
// only on a Claims value returned by Validate.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func (c *Claims) Email() string { return c.Subject }

// Identity projects the claims into the request-scoped identity value.
func (c *Claims) Identity() utils.Identity {
	return utils.Identity{Email: c.Subject, Role: utils.Role(c.Role)}
}

// Codec issues and validates HS256-signed tokens. The key is set once at
// startup and only read afterwards, so a single Codec is safe for concurrent
// use across requests.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewCodec(key []byte) *Codec {
	return &Codec{key: key, ttl: ExpirationWindow, now: time.Now}
}

// Issue signs a token binding the subject email and role, valid from now
// until now + ExpirationWindow. The role is fixed at issuance; changing the
// account's role later does not touch tokens already in the wild.
func (c *Codec) Issue(email string, role utils.Role) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: string(role),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.key)
}

// Validate checks signature and expiry and returns the claims. Any failure,
// including garbage input, comes back as ErrInvalidToken; Validate never
// panics and never partially succeeds.
func (c *Codec) Validate(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Pin the algorithm family; a token claiming "none" or an
		// asymmetric method must not reach the HMAC key.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if _, ok := utils.ParseRole(claims.Role); !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
