package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

const courseNotFound = "Kurs bulunamadı"

type CourseHandler struct {
	courses *service.CourseService
}

func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// GET /courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{"courses": courses}, nil)
}

// POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in service.CourseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.courses.Create(r.Context(), in, auth.GetUserFromCtx(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "Kurs oluşturuldu", map[string]interface{}{"course": c}, nil)
}

// GET /courses/{id}/schedules
func (h *CourseHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.courses.ListSchedules(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, courseNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{"schedules": schedules}, nil)
}

// POST /schedules
func (h *CourseHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var in service.ScheduleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sc, err := h.courses.CreateSchedule(r.Context(), in)
	if err != nil {
		writeError(w, r, err, courseNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "Program oluşturuldu", map[string]interface{}{"schedule": sc}, nil)
}
