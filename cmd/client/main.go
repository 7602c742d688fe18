package main

import (
	"flag"
	"log"

	"github.com/marianogappa/truco/exampleclient"
)

func main() {
	var (
		playerID = flag.Int("player", 0, "seat to take (0 or 1)")
		name     = flag.String("name", "", "player name")
		address  = flag.String("address", "localhost:8080", "server address")
	)
	flag.Parse()

	if err := exampleclient.Player(*playerID, *name, *address); err != nil {
		log.Fatal(err)
	}
}
