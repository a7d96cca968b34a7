package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Response headers carrying a reissued token pair after a silent refresh.
const (
	AccessTokenHeader  = "X-Access-Token"
	RefreshTokenHeader = "X-Refresh-Token"
)

type ctxKey string

const claimsKey ctxKey = "auth_claims"

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

func ContextWithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// SessionStore is the subset of Store the middleware needs.
type SessionStore interface {
	RefreshRow(ctx context.Context, token string, userID uint64) (*RefreshToken, error)
	SaveRefresh(ctx context.Context, row *RefreshToken) error
	DeleteRefresh(ctx context.Context, token string) error
	UserByID(ctx context.Context, id uint64) (*User, error)
}

// Reauth is the outcome of a silent refresh: the identity that was
// re-established plus the new pair the client must start using.
type Reauth struct {
	Claims Claims
	Pair   Pair
}

// RequireAuth verifies the bearer access token. An expired access token is
// not fatal when the request carries a valid, non-revoked refresh token in
// X-Refresh-Token: a new pair is minted, the old refresh row is rotated out,
// and the new tokens are returned in the response headers.
func RequireAuth(tokens *Tokens, sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(h, "Bearer ")

			claims, err := tokens.VerifyAccess(tokenStr)
			switch {
			case err == nil:
				// valid access token, no store lookup
			case errors.Is(err, ErrTokenExpired):
				re, rerr := refresh(r.Context(), tokens, sessions, r.Header.Get(RefreshTokenHeader))
				if rerr != nil {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				claims = re.Claims
				w.Header().Set(AccessTokenHeader, re.Pair.AccessToken)
				w.Header().Set(RefreshTokenHeader, re.Pair.RefreshToken)
			default:
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// refresh performs the silent-refresh handshake: signature and expiry of the
// refresh token, row present in the store for the claimed user, user still
// exists. On success the old row is deleted and a new pair persisted.
func refresh(ctx context.Context, tokens *Tokens, sessions SessionStore, refreshStr string) (Reauth, error) {
	if refreshStr == "" {
		return Reauth{}, ErrTokenInvalid
	}

	uid, err := tokens.VerifyRefresh(refreshStr)
	if err != nil {
		return Reauth{}, err
	}

	row, err := sessions.RefreshRow(ctx, refreshStr, uid)
	if err != nil {
		return Reauth{}, err
	}
	if time.Now().After(row.ExpiresAt) {
		return Reauth{}, ErrTokenExpired
	}

	user, err := sessions.UserByID(ctx, uid)
	if err != nil {
		return Reauth{}, err
	}

	pair, err := tokens.NewPair(user.ID, user.Email)
	if err != nil {
		return Reauth{}, err
	}
	if err := sessions.SaveRefresh(ctx, &RefreshToken{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: pair.RefreshExpiresAt,
	}); err != nil {
		return Reauth{}, err
	}
	// rotate: the replaced token is revoked immediately
	if err := sessions.DeleteRefresh(ctx, refreshStr); err != nil {
		return Reauth{}, err
	}

	return Reauth{
		Claims: Claims{UserID: user.ID, Email: user.Email},
		Pair:   pair,
	}, nil
}
