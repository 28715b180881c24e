package v1

import (
	"net/http"

	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

type PoolHandler struct {
	pools *service.PoolService
}

func NewPoolHandler(pools *service.PoolService) *PoolHandler {
	return &PoolHandler{pools: pools}
}

// GET /pools
func (h *PoolHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.pools.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{"pools": pools}, nil)
}

// POST /pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var in service.PoolInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.pools.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "Havuz oluşturuldu", map[string]interface{}{"pool": p}, nil)
}
