package main

import (
	"log"

	"irrigation-server/confs"
	"irrigation-server/db"
	"irrigation-server/server"
)

func main() {
	// load config
	cfg := confs.Load()

	// connect to database Postgres
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(cfg, database)
	srv.Start()
}
