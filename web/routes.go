// JSON request handlers
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-rspfb"
	"go-rspfb/pipeline"
	"go-rspfb/store"
)

const requestTimeout = 20 * time.Second // arbitrary choice, mirrors teacher's DB_TIMEOUT

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writePipelineError maps a pipeline/store error onto the three kinds
// of §7: a ClientError is a 400, everything else a 500.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	if ce, ok := err.(*pipeline.ClientError); ok {
		writeError(w, http.StatusBadRequest, ce.Msg)
		return
	}
	s.Log.Print(err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

type newGameRequest struct {
	GameId string `json:"gameId"`
	User   string `json:"user"`
}

// newGame implements POST /new-game (§6)
func (s *Server) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}
	if req.GameId == "" || req.User == "" {
		writeError(w, http.StatusBadRequest, "gameId and user are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	g := rspfb.New(req.GameId, req.User)
	if err := s.Store.Create(ctx, g); err != nil {
		if err == store.ErrExists {
			writeError(w, http.StatusBadRequest, "Game already exists")
			return
		}
		s.Log.Print(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, g)
}

type joinGameRequest struct {
	GameId string `json:"gameId"`
	User   string `json:"user"`
}

// joinGame implements POST /join-game (§6)
func (s *Server) joinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	g, err := s.Store.Load(ctx, req.GameId)
	if err == store.ErrNotFound {
		writeError(w, http.StatusBadRequest, "Game not found")
		return
	}
	if err != nil {
		s.Log.Print(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if g.Players[rspfb.Away] != nil {
		writeError(w, http.StatusBadRequest, "Game already has two players")
		return
	}
	if home := g.Players[rspfb.Home]; home != nil && *home == req.User {
		writeError(w, http.StatusBadRequest, "Already joined as home")
		return
	}

	g.Players[rspfb.Away] = &req.User
	if err := s.Store.ConditionalPut(ctx, g, g.Version); err != nil {
		s.Log.Print(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, "Joined game")
}

type actionRequest struct {
	GameId string       `json:"gameId"`
	User   string       `json:"user"`
	Action rspfb.Action `json:"action"`
}

// action implements POST /action (§6)
func (s *Server) action(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	g, err := s.Pipeline.ProcessAction(ctx, req.GameId, req.User, req.Action)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, g)
}

type pollRequest struct {
	GameId  string `json:"gameId"`
	Version int64  `json:"version"`
}

// poll implements POST /poll (§4.6, §6)
func (s *Server) poll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}

	g, err := s.Pipeline.Poll(r.Context(), req.GameId, req.Version)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, g)
}

type listedGame struct {
	GameId  string                   `json:"gameId"`
	Players map[rspfb.Player]*string `json:"players"`
}

// listGames implements GET /list-games (§6)
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ListFilter{User: q.Get("user")}
	if v := q.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "available must be a boolean")
			return
		}
		filter.AvailableOnly = available
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	games, err := s.Store.List(ctx, filter)
	if err != nil {
		s.Log.Print(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]listedGame, len(games))
	for i, g := range games {
		out[i] = listedGame{GameId: g.GameId, Players: g.Players}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": out})
}
