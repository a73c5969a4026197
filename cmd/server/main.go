// Entry point
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"go-rspfb/conf"
	"go-rspfb/pipeline"
	"go-rspfb/rng"
	"go-rspfb/store"
	"go-rspfb/web"
)

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := conf.Load()
	config.Debug.Println("Debug logging has been enabled")

	db, err := store.OpenSQLite(config.DBDSN, config.AllowOverwrites)
	if err != nil {
		log.Fatal(err)
	}

	pl := pipeline.New(db, rng.New(), config.MaxUpdateAttempts, config.MaxPollTime, config.PollInterval)

	srv := &web.Server{
		Pipeline: pl,
		Store:    db,
		Log:      config.Log,
		Debug:    config.Debug,
	}

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: web.NewRouter(srv),
	}

	go func() {
		config.Log.Printf("Listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	<-intr

	config.Debug.Println("Caught interrupt, shutting down")
	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Print(err)
	}
	if err := db.Close(); err != nil {
		log.Print(err)
	}
}
