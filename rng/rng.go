// Random source
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package rng provides the injectable die-roll source used throughout the
// game engine. Every roll is a uniform integer in [1,6].
package rng

import (
	"math/rand"
	"sync"
)

// Source yields dice rolls. It is injected into the engine so that tests
// can supply scripted outcomes; see Scripted.
type Source interface {
	// Roll returns n independent uniform rolls in [1,6]
	Roll(n int) []int
}

// mathRand is the production Source, backed by math/rand
type mathRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded from the global math/rand source
func New() Source {
	return &mathRand{rnd: rand.New(rand.NewSource(rand.Int63()))}
}

func (m *mathRand) Roll(n int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = m.rnd.Intn(6) + 1
	}
	return rolls
}

// Scripted is a test Source that replays a fixed sequence of rolls,
// consuming n values per call to Roll. It panics if exhausted, since a
// test that runs out of scripted rolls has a bug in its setup, not its
// subject.
type Scripted struct {
	mu     sync.Mutex
	values []int
}

// NewScripted returns a Source that replays values in order
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) Roll(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.values) {
		panic("rng: scripted source exhausted")
	}
	rolls := s.values[:n]
	s.values = s.values[n:]
	return rolls
}
