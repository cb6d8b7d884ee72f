package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	r := MapReader{
		"str":     "value",
		"int":     7,
		"int64":   int64(8),
		"float":   float64(9),
		"frac":    9.5,
		"uint":    uint32(3),
		"nil":     nil,
		"boolean": true,
	}

	assert.Equal(t, "value", Get(r, "str", "def"))
	assert.Equal(t, "def", Get(r, "missing", "def"))
	assert.Equal(t, "def", Get(r, "nil", "def"))
	assert.Equal(t, "def", Get(r, "int", "def"))

	assert.Equal(t, 7, Get(r, "int", 0))
	assert.Equal(t, 8, Get(r, "int64", 0))
	assert.Equal(t, 9, Get(r, "float", 0))
	assert.Equal(t, 3, Get(r, "uint", 0))
	assert.Equal(t, -1, Get(r, "frac", -1))
	assert.Equal(t, -1, Get(r, "str", -1))

	assert.True(t, Get(r, "boolean", false))
}

func TestGet_NilReader(t *testing.T) {
	assert.Equal(t, "def", Get[string](nil, "any", "def"))
}
