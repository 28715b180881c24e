package v1

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// POST /enrollments
// studentId defaults to the caller; only admins may book for someone else.
func (h *EnrollmentHandler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var in service.EnrollmentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	current := auth.GetUserFromCtx(r.Context())
	if in.StudentID == "" {
		in.StudentID = current.ID
	}
	if !canActFor(current, in.StudentID) {
		writeError(w, r, apperr.ErrForbidden)
		return
	}
	e, err := h.enrollments.CreateEnrollment(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Kurs veya program bulunamadı")
		return
	}
	hlog.FromRequest(r).Info().
		Str("enrollment_id", e.ID).
		Str("student_id", e.StudentID).
		Str("schedule_id", e.ScheduleID).
		Msg("enrollment created")
	utils.WriteJSONResponse(w, http.StatusCreated, true, "Kayıt oluşturuldu", map[string]interface{}{"enrollment": e}, nil)
}

// GET /enrollments?studentId=
func (h *EnrollmentHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		studentID = current.ID
	}
	if !canActFor(current, studentID) {
		writeError(w, r, apperr.ErrForbidden)
		return
	}
	list, err := h.enrollments.ListStudentEnrollments(r.Context(), studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{"enrollments": list}, nil)
}
