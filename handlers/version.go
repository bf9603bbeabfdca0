package handlers

import (
	"net/http"

	"github.com/yakychan/KidsFlix/api"
)

// Version is the addon version. Override at build time with
// -ldflags "-X github.com/yakychan/KidsFlix/handlers.Version=...".
var Version = "2.0.0"

type VersionHandler struct{}

type VersionResponse struct {
	Version string `json:"version"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, VersionResponse{Version: Version})
}
