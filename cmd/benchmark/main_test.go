package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSortedDegenerates(t *testing.T) {
	ids := make([]int, 200)
	for i := range ids {
		ids[i] = i
	}

	r := run("sorted", ids)
	assert.Equal(t, 199, r.idHeight)
	// Searching every key of a chain visits 1+2+...+n nodes.
	assert.InDelta(t, 100.5, r.avgVisits, 1e-9)
}

func TestRunEmpty(t *testing.T) {
	r := run("empty", nil)
	assert.Equal(t, -1, r.idHeight)
	assert.Zero(t, r.avgVisits)
}
