package v1

import (
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

const maxImageSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type ImageHandler struct {
	courses *service.CourseService
}

func NewImageHandler(courses *service.CourseService) *ImageHandler {
	return &ImageHandler{courses: courses}
}

// POST /courses/{id}/image
func (h *ImageHandler) UploadCourseImage(w http.ResponseWriter, r *http.Request) {
	// Max 5MB, plus room for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(64<<10))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "", nil, "Dosya çok büyük veya form geçersiz")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "", nil, "file alanı eksik")
		return
	}
	defer file.Close()
	if header.Size > maxImageSize {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "", nil, "Dosya 5MB'dan büyük olamaz")
		return
	}

	mime, err := mimetype.DetectReader(file)
	if err != nil || !mimetype.EqualsAny(mime.String(), allowedImageTypes...) {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "", nil, "Yalnızca JPEG, PNG, WEBP veya GIF yüklenebilir")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.courses.SetImage(r.Context(), chi.URLParam(r, "id"), "cover"+mime.Extension(), file)
	if err != nil {
		writeError(w, r, err, courseNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "Görsel yüklendi", map[string]interface{}{"course": c}, nil)
}
