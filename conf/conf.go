// Configuration specification and management
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package conf loads the server's configuration from a TOML file and
// the environment, and carries the shared loggers every other package
// writes through.
package conf

import (
	"io"
	"log"
	"time"
)

// Internal representation decoded straight off the TOML file
type fileConf struct {
	Debug    bool `toml:"debug"`
	Database struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"database"`
	Web struct {
		Host string `toml:"host"`
		Port uint   `toml:"port"`
	} `toml:"web"`
	Pipeline struct {
		MaxUpdateAttemptsMs uint `toml:"max_update_attempts"`
		MaxPollTimeMs       uint `toml:"max_poll_time_ms"`
		PollIntervalMs      uint `toml:"poll_interval_ms"`
		AllowOverwrites     bool `toml:"allow_overwrites"`
	} `toml:"pipeline"`
}

// Conf is the configuration surface every package depends on
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger

	// Database
	DBDriver string
	DBDSN    string

	// Web
	Host string
	Port uint

	// MaxUpdateAttempts bounds the action pipeline's optimistic-
	// concurrency retry loop (§4.3 step 7).
	MaxUpdateAttempts uint
	// MaxPollTime bounds how long /poll blocks before returning the
	// caller's already-seen snapshot (§4.6).
	MaxPollTime time.Duration
	// PollInterval is the sleep between reloads inside /poll.
	PollInterval time.Duration
	// AllowOverwrites lets /new-game replace an existing record
	// instead of rejecting the request (§6).
	AllowOverwrites bool
}

var defaultConfig = Conf{
	Log:   log.Default(),
	Debug: log.New(io.Discard, "[debug] ", log.Ltime|log.Lshortfile|log.Lmicroseconds),

	DBDriver: "sqlite3",
	DBDSN:    "rspfb.sqlite3",

	Host: "0.0.0.0",
	Port: 8080,

	MaxUpdateAttempts: 5,
	MaxPollTime:       30 * time.Second,
	PollInterval:      250 * time.Millisecond,
	AllowOverwrites:   false,
}
