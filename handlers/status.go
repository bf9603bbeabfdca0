package handlers

import (
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/services/kids"
)

// StatusHandler reports cache occupancy and the filter table sizes.
type StatusHandler struct {
	Cache   *cache.Cache
	Started time.Time
	Now     func() time.Time
}

func NewStatusHandler(c *cache.Cache, started time.Time) *StatusHandler {
	return &StatusHandler{Cache: c, Started: started, Now: time.Now}
}

type StatusResponse struct {
	Name          string           `json:"name"`
	Version       string           `json:"version"`
	Mode          string           `json:"mode"`
	Uptime        string           `json:"uptime"`
	CacheEntries  int              `json:"cacheEntries"`
	ActiveEntries int              `json:"activeEntries"`
	HeapInUse     string           `json:"heapInUse"`
	Filtering     kids.FilterStats `json:"filtering"`
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	var total, active int
	if h.Cache != nil {
		total, active = h.Cache.Stats()
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	api.WriteJSON(w, http.StatusOK, StatusResponse{
		Name:          AddonName,
		Version:       Version,
		Mode:          "per-user-config",
		Uptime:        strings.TrimSpace(humanize.RelTime(h.Started, h.Now(), "", "")),
		CacheEntries:  total,
		ActiveEntries: active,
		HeapInUse:     humanize.IBytes(mem.HeapInuse),
		Filtering:     kids.Stats(),
	})
}
