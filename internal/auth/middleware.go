package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

type ctxKey string

const ctxUserKey ctxKey = "currentUser"

// UserLoader resolves the subject of a verified token.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

func GetUserFromCtx(ctx context.Context) *models.User {
	if u, ok := ctx.Value(ctxUserKey).(*models.User); ok {
		return u
	}
	return nil
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// AuthMiddleware validates the bearer JWT, loads the user and stores it in the context.
// The role used downstream is the stored one, not the claim.
func AuthMiddleware(tm *TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Oturum açmanız gerekiyor")
				return
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Geçersiz yetkilendirme başlığı")
				return
			}
			claims, err := tm.ParseAndValidateToken(parts[1])
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Geçersiz veya süresi dolmuş oturum")
				return
			}
			u, err := users.GetUserByID(r.Context(), claims.UserID())
			if err != nil {
				if !errors.Is(err, apperr.ErrNotFound) {
					hlog.FromRequest(r).Error().Err(err).Str("user_id", claims.UserID()).Msg("auth: load user")
				}
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Kullanıcı bulunamadı")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RoleMiddleware allows multiple roles; usage: RoleMiddleware(models.RoleAdmin, models.RoleInstructor)
func RoleMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	set := map[models.Role]struct{}{}
	for _, r := range allowedRoles {
		set[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := GetUserFromCtx(r.Context())
			if u == nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Oturum açmanız gerekiyor")
				return
			}
			if _, ok := set[u.Role]; !ok {
				utils.WriteJSONResponse(w, http.StatusForbidden, false, "", nil, "Bu işlem için yetkiniz yok")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
