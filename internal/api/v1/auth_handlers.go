package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	cfg   *config.Config
	users *service.UserService
	auth  *service.AuthService
}

func NewAuthHandler(cfg *config.Config, users *service.UserService, authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, auth: authSvc}
}

// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("user_id", u.ID).Msg("user registered")
	utils.WriteJSONResponse(w, http.StatusCreated, true, "Kayıt başarılı! En kısa sürede sizinle iletişime geçeceğiz.",
		map[string]interface{}{"user": u}, nil)
}

// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sess, err := h.auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, sess, "Giriş başarılı")
}

// POST /auth/google expects {"code": "..."} from the client's OAuth flow.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.auth.LoginWithGoogle(r.Context(), req.Code)
	if errors.Is(err, apperr.ErrGoogleDisabled) {
		writeError(w, r, err)
		return
	}
	if err != nil {
		writeError(w, r, err, "Bu e-posta ile kayıtlı kullanıcı bulunamadı")
		return
	}
	h.writeSession(w, sess, "Giriş başarılı")
}

// POST /auth/refresh rotates the refresh cookie and returns a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "", nil, "Oturum bulunamadı")
		return
	}
	sess, err := h.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.clearCookie(w)
		writeError(w, r, err)
		return
	}
	h.setCookie(w, sess.RefreshToken, sess.RefreshExpiresAt)
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"token":     sess.AccessToken,
		"expiresIn": int64(sess.ExpiresIn.Seconds()),
	}, nil)
}

// POST /auth/logout revokes the refresh cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}
	h.clearCookie(w)
	utils.WriteJSONResponse(w, http.StatusOK, true, "Çıkış yapıldı", nil, nil)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, sess *service.Session, msg string) {
	h.setCookie(w, sess.RefreshToken, sess.RefreshExpiresAt)
	utils.WriteJSONResponse(w, http.StatusOK, true, msg, map[string]interface{}{
		"token":     sess.AccessToken,
		"expiresIn": int64(sess.ExpiresIn.Seconds()),
		"user":      sess.User,
	}, nil)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
