package app

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes registers all endpoints and returns the router as an http.Handler.
func (app *Application) Routes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)
	router.HandlerFunc(http.MethodGet, "/stations", app.stationsHandler)
	router.HandlerFunc(http.MethodGet, "/station/:id", app.stationHandler)
	router.HandlerFunc(http.MethodGet, "/chargers-on-route", app.chargersOnRouteHandler)
	router.HandlerFunc(http.MethodGet, "/parent-stations", app.parentStationsHandler)
	router.HandlerFunc(http.MethodPost, "/find_parks", app.findParksHandler)
	router.HandlerFunc(http.MethodGet, "/data/:id", app.dataGetHandler)
	router.HandlerFunc(http.MethodPut, "/data/:id", app.dataPutHandler)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthzHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))

	return router
}
