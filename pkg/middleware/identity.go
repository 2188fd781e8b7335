package middleware

import (
	"context"
	"net/http"

	"chedoparti/pkg/model"
)

// Caller identity headers. The gateway terminates authentication and passes
// the resolved identity downstream; the booking services trust these headers
// only from the internal network.
const (
	HeaderUserID     = "X-User-ID"
	HeaderUserRole   = "X-User-Role"
	HeaderUserMember = "X-User-Member"
)

const UserKey contextKey = "user"

// Identity resolves the caller from the identity headers into the request
// context. Absent headers yield a guest, which pkg/rules denies everything.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := model.User{
				ID:     r.Header.Get(HeaderUserID),
				Role:   model.ParseRole(r.Header.Get(HeaderUserRole)),
				Member: r.Header.Get(HeaderUserMember) == "true",
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom extracts the caller set by Identity. The zero User is a guest.
func UserFrom(ctx context.Context) model.User {
	if u, ok := ctx.Value(UserKey).(model.User); ok {
		return u
	}
	return model.User{}
}
