package leaderboardhandlers

import "net/http"

// Handlers serves the leaderboard over HTTP.
type Handlers interface {
	HandleHTTPPage(w http.ResponseWriter, r *http.Request)
	HandleHTTPJSON(w http.ResponseWriter, r *http.Request)
	HandleHTTPWorkbook(w http.ResponseWriter, r *http.Request)
	HandleHTTPChart(w http.ResponseWriter, r *http.Request)
	HandleHTTPHealth(w http.ResponseWriter, r *http.Request)
}
