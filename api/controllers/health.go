package controllers

import (
	"net/http"

	"github.com/apper-canvas/stylehub-port-matrix/api/responses"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StyleHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, st store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StyleHub-Env", cfg.App.Env)
		if st == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		if err := st.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store unreachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "backend": cfg.Store.Backend})
	}
}
