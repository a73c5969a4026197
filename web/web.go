// HTTP edge
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package web implements the five JSON endpoints of §6 on top of chi,
// handing /action and /poll to the pipeline and serving /new-game,
// /join-game and /list-games directly from the Store.
package web

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-rspfb/pipeline"
	"go-rspfb/store"
)

// Server holds the dependencies every handler needs
type Server struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Log      *log.Logger
	Debug    *log.Logger
}

// NewRouter builds the chi router serving all five endpoints of §6
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/new-game", s.newGame)
	r.Post("/join-game", s.joinGame)
	r.Post("/action", s.action)
	r.Post("/poll", s.poll)
	r.Get("/list-games", s.listGames)

	return r
}
