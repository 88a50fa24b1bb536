package controller

import (
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// PprofRouter returns a router with net/http/pprof handlers registered at the
// root. It is meant to be mounted under /debug/pprof, where pprof.Index also
// serves the named profiles.
func PprofRouter() chi.Router {
	r := chi.NewRouter()

	r.HandleFunc("/", pprof.Index)
	r.HandleFunc("/cmdline", pprof.Cmdline)
	r.HandleFunc("/profile", pprof.Profile)
	r.HandleFunc("/symbol", pprof.Symbol)
	r.HandleFunc("/trace", pprof.Trace)
	r.HandleFunc("/*", pprof.Index)

	return r
}
