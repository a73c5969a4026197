// Configuration loading tests
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package conf

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsOnEmptyFile(t *testing.T) {
	c, err := load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DBDriver != defaultConfig.DBDriver {
		t.Errorf("DBDriver = %q, want default %q", c.DBDriver, defaultConfig.DBDriver)
	}
	if c.Port != defaultConfig.Port {
		t.Errorf("Port = %d, want default %d", c.Port, defaultConfig.Port)
	}
	if c.AllowOverwrites {
		t.Error("AllowOverwrites = true, want false by default")
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	toml := `
debug = true

[database]
driver = "postgres"
dsn = "postgres://example"

[web]
host = "127.0.0.1"
port = 9090

[pipeline]
max_update_attempts = 3
max_poll_time_ms = 1000
poll_interval_ms = 50
allow_overwrites = true
`
	c, err := load(strings.NewReader(toml))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DBDriver != "postgres" || c.DBDSN != "postgres://example" {
		t.Errorf("database = %q/%q, want postgres/postgres://example", c.DBDriver, c.DBDSN)
	}
	if c.Host != "127.0.0.1" || c.Port != 9090 {
		t.Errorf("web = %q:%d, want 127.0.0.1:9090", c.Host, c.Port)
	}
	if c.MaxUpdateAttempts != 3 {
		t.Errorf("MaxUpdateAttempts = %d, want 3", c.MaxUpdateAttempts)
	}
	if c.MaxPollTime != time.Second {
		t.Errorf("MaxPollTime = %s, want 1s", c.MaxPollTime)
	}
	if c.PollInterval != 50*time.Millisecond {
		t.Errorf("PollInterval = %s, want 50ms", c.PollInterval)
	}
	if !c.AllowOverwrites {
		t.Error("AllowOverwrites = false, want true")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	c := defaultConfig
	t.Setenv("MAX_UPDATE_ATTEMPTS", "9")
	t.Setenv("MAX_POLL_TIME", "45s")
	t.Setenv("POLL_INTERVAL", "10ms")
	t.Setenv("ALLOW_OVERWRITES", "true")

	applyEnv(&c)

	if c.MaxUpdateAttempts != 9 {
		t.Errorf("MaxUpdateAttempts = %d, want 9", c.MaxUpdateAttempts)
	}
	if c.MaxPollTime != 45*time.Second {
		t.Errorf("MaxPollTime = %s, want 45s", c.MaxPollTime)
	}
	if c.PollInterval != 10*time.Millisecond {
		t.Errorf("PollInterval = %s, want 10ms", c.PollInterval)
	}
	if !c.AllowOverwrites {
		t.Error("AllowOverwrites = false, want true")
	}
}

func TestApplyEnvIgnoresMalformedValues(t *testing.T) {
	c := defaultConfig
	want := c.MaxUpdateAttempts
	t.Setenv("MAX_UPDATE_ATTEMPTS", "not-a-number")

	applyEnv(&c)

	if c.MaxUpdateAttempts != want {
		t.Errorf("MaxUpdateAttempts = %d, want unchanged %d", c.MaxUpdateAttempts, want)
	}
}
