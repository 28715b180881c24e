package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		data := map[string]interface{}{"time": time.Now().UTC()}
		if err := p.Ping(ctx); err != nil {
			data["db"] = false
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, false, "db unreachable", data, nil)
			return
		}
		data["db"] = true
		utils.WriteJSONResponse(w, http.StatusOK, true, "ok", data, nil)
	}
}
