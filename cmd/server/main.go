package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/marianogappa/truco/server"
	"github.com/marianogappa/truco/store"
	"github.com/marianogappa/truco/truco"
)

func main() {
	st := store.New()
	defer st.Close()

	seats := []truco.Seat{
		{ID: 0, Name: "player0", TeamID: 0},
		{ID: 1, Name: "player1", TeamID: 1},
	}

	targetScore := 30
	if raw := os.Getenv("TARGET_SCORE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid TARGET_SCORE %q: %v", raw, err)
		}
		targetScore = n
	}

	hub := server.NewHub(&st, seats, targetScore)
	router := server.NewRouter(hub, &st)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
