// Configuration loading
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package conf

import (
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const defconf = "rspfb.toml"

var (
	debug bool   = false
	cfile string = defconf
)

func init() {
	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

// load decodes a TOML stream onto a copy of the default configuration
func load(r io.Reader) (*Conf, error) {
	var data fileConf
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConfig

	if data.Database.Driver != "" {
		c.DBDriver = data.Database.Driver
	}
	if data.Database.DSN != "" {
		c.DBDSN = data.Database.DSN
	}
	if data.Web.Host != "" {
		c.Host = data.Web.Host
	}
	if data.Web.Port != 0 {
		c.Port = data.Web.Port
	}
	if data.Pipeline.MaxUpdateAttemptsMs != 0 {
		c.MaxUpdateAttempts = data.Pipeline.MaxUpdateAttemptsMs
	}
	if data.Pipeline.MaxPollTimeMs != 0 {
		c.MaxPollTime = time.Duration(data.Pipeline.MaxPollTimeMs) * time.Millisecond
	}
	if data.Pipeline.PollIntervalMs != 0 {
		c.PollInterval = time.Duration(data.Pipeline.PollIntervalMs) * time.Millisecond
	}
	c.AllowOverwrites = data.Pipeline.AllowOverwrites

	return &c, nil
}

// Load opens the configuration file named by -conf and falls back to
// defaults if it cannot be decoded or if the default file is absent; a
// missing file named explicitly by -conf is fatal. It then applies the
// four environment overrides named in §6.
func Load() *Conf {
	var c *Conf

	file, err := os.Open(cfile)
	switch {
	case err == nil:
		defer file.Close()
		c, err = load(file)
		if err != nil {
			log.Print(err)
			fallback := defaultConfig
			c = &fallback
		}
	case os.IsNotExist(err) && cfile == defconf:
		fallback := defaultConfig
		c = &fallback
	default:
		log.Fatal(err)
	}

	if debug {
		c.Debug.SetOutput(os.Stderr)
	}

	applyEnv(c)
	return c
}

func applyEnv(c *Conf) {
	if v, ok := os.LookupEnv("MAX_UPDATE_ATTEMPTS"); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.MaxUpdateAttempts = uint(n)
		}
	}
	if v, ok := os.LookupEnv("MAX_POLL_TIME"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxPollTime = d
		}
	}
	if v, ok := os.LookupEnv("POLL_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = d
		}
	}
	if v, ok := os.LookupEnv("ALLOW_OVERWRITES"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowOverwrites = b
		}
	}
}
