package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/handlers"
	"github.com/vancomm/maze-server/internal/repository"
)

// createRand seeds from seed when set, randomly otherwise.
func createRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	var runs handlers.RunLister
	if a.db != nil {
		runs = repository.New(a.db)
	}
	h := handlers.NewMazeHandler(a.logger, a.driver, a.cfg, a.ws, runs)

	base := config.BasePath()
	a.router.HandleFunc("GET "+base+"/maze", h.Fetch)
	a.router.HandleFunc("POST "+base+"/maze/reset", h.Reset)
	a.router.HandleFunc("POST "+base+"/maze/search", h.Search)
	a.router.HandleFunc("POST "+base+"/maze/advance", h.Advance)
	a.router.HandleFunc(base+"/maze/connect", h.Connect)
	a.router.HandleFunc("GET "+base+"/runs", h.Runs)
	a.router.Handle("GET "+base+"/metrics", a.metrics.Handler())
	a.router.HandleFunc("GET "+base+"/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
