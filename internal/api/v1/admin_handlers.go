package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

// AdminHandler serves the user management panel. Routes are gated by RoleMiddleware(admin).
type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// GET /users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"users": users,
		"count": len(users),
	}, nil)
}

// DELETE /users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "Kullanıcı bulunamadı")
		return
	}
	hlog.FromRequest(r).Info().Str("user_id", id).Str("by", auth.GetUserFromCtx(r.Context()).ID).Msg("user deleted")
	utils.WriteJSONResponse(w, http.StatusOK, true, "Kullanıcı başarıyla silindi", nil, nil)
}

// PUT /users/{id}/promote
func (h *AdminHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Promote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Kullanıcı bulunamadı")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "Kullanıcı başarıyla eğitmen yapıldı", map[string]interface{}{"user": u}, nil)
}
