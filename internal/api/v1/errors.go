package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

const maxJSONBody = 1 << 20

var clientMessages = []struct {
	err error
	msg string
}{
	{apperr.ErrAlreadyEnrolled, "Bu kursa zaten kayıtlısınız"},
	{apperr.ErrScheduleFull, "Bu program dolu"},
	{apperr.ErrUserExists, "Bu e-posta veya kullanıcı adı zaten kayıtlı."},
	{apperr.ErrInvalidCredentials, "Kullanıcı adı/e-posta veya şifre hatalı."},
	{apperr.ErrAdminPromotion, "Admin kullanıcıları yükseltilemez"},
	{apperr.ErrForbidden, "Bu işlem için yetkiniz yok"},
	{apperr.ErrGoogleDisabled, "Google ile giriş etkin değil"},
	{apperr.ErrNotFound, "Kayıt bulunamadı"},
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto a status and a client-facing message.
// notFoundMsg, when set, replaces the message of a not-found error.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg ...string) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		utils.WriteJSONResponse(w, status, false, "Form verilerinde hata var.", nil,
			map[string]interface{}{"fieldErrors": ve.FieldErrors})
		return
	}
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		utils.WriteJSONResponse(w, status, false, "", nil, "Sunucu hatası. Lütfen daha sonra tekrar deneyin.")
		return
	}
	if kind == apperr.KindNotFound && len(notFoundMsg) > 0 {
		utils.WriteJSONResponse(w, status, false, "", nil, notFoundMsg[0])
		return
	}
	utils.WriteJSONResponse(w, status, false, "", nil, messageFor(err, kind))
}

func messageFor(err error, kind apperr.Kind) string {
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	switch kind {
	case apperr.KindUnauthorized:
		return "Oturum geçersiz veya süresi dolmuş"
	case apperr.KindNotFound:
		return "Kayıt bulunamadı"
	case apperr.KindForbidden:
		return "Bu işlem için yetkiniz yok"
	}
	return "İstek işlenemedi"
}

// decodeJSON reads a JSON body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "", nil, "Geçersiz istek gövdesi")
		return false
	}
	return true
}
