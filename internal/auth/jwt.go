package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity carried by a verified access token.
type Claims struct {
	UserID uint64
	Email  string
}

// Pair is a freshly issued access/refresh token pair. RefreshExpiresAt is the
// expiry to persist alongside the refresh token row.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64 // access token lifetime, seconds
	RefreshExpiresAt time.Time
}

// Tokens signs and verifies access and refresh tokens. Access tokens are
// stateless; refresh tokens additionally require a matching row in the store.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (t *Tokens) NewPair(userID uint64, email string) (Pair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(t.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(t.accessSecret)
	if err != nil {
		return Pair{}, err
	}

	refreshExp := now.Add(t.refreshTTL)
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": refreshExp.Unix(),
	})
	refreshStr, err := refresh.SignedString(t.refreshSecret)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:      accessStr,
		RefreshToken:     refreshStr,
		ExpiresIn:        int64(t.accessTTL.Seconds()),
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess checks signature and expiry. Expiry is reported as
// ErrTokenExpired so the middleware can attempt a silent refresh.
func (t *Tokens) VerifyAccess(tokenStr string) (Claims, error) {
	claims, err := t.verify(tokenStr, t.accessSecret)
	if err != nil {
		return Claims{}, err
	}

	c := Claims{}
	sub, ok := claims["sub"].(float64) // jwt MapClaims numbers are float64
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	c.UserID = uint64(sub)
	c.Email, _ = claims["email"].(string)
	return c, nil
}

// VerifyRefresh checks signature and expiry and returns the claimed user id.
// Callers must still confirm the token row exists in the store.
func (t *Tokens) VerifyRefresh(tokenStr string) (uint64, error) {
	claims, err := t.verify(tokenStr, t.refreshSecret)
	if err != nil {
		return 0, err
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrTokenInvalid
	}
	return uint64(sub), nil
}

func (t *Tokens) verify(tokenStr string, secret []byte) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
