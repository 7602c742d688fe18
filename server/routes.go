package server

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marianogappa/truco/store"
)

// NewRouter wires the websocket endpoint and the read-only results API.
func NewRouter(hub *Hub, st *store.Service) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", hub.ServeWs)
	r.HandleFunc("/api/results", getAllResults(st)).Methods("GET")
	r.HandleFunc("/api/results/player/{id}", getResultsByPlayer(st)).Methods("GET")
	r.HandleFunc("/api/players/{id}", getPlayer(st)).Methods("GET")
	return r
}

func getAllResults(st *store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := st.GetAllMatches()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, matches)
	}
}

func getResultsByPlayer(st *store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := st.GetMatchesByPlayer(mux.Vars(r)["id"])
		if err == sql.ErrNoRows {
			http.Error(w, "no matches for player", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, matches)
	}
}

func getPlayer(st *store.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := st.GetPlayer(mux.Vars(r)["id"])
		if err == sql.ErrNoRows {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, row)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
