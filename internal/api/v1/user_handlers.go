package v1

import (
	"net/http"

	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GET /users/me
func (h *UserHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{"user": current}, nil)
}

// canActFor reports whether current may read or book on behalf of studentID.
func canActFor(current *models.User, studentID string) bool {
	if current == nil {
		return false
	}
	return current.Role == models.RoleAdmin || current.ID == studentID
}
