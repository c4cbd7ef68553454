package handler

import (
	"net/http"
	"sync"

	"quickcourt/config"
	"quickcourt/di"
	"quickcourt/shared/logger"
	quickcourtHTTP "quickcourt/transport/http"
)

var (
	app  *quickcourtHTTP.HTTP
	once sync.Once
)

// Handler serves QuickCourt from a serverless function. The dependency graph
// is built on the first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	app.ServeHTTP(w, r)
}
