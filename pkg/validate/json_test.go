package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON(`{"a": 1, "b": [true, null]}`))
	assert.True(t, IsJSON(`"plain string"`))
	assert.True(t, IsJSON(`42`))

	assert.False(t, IsJSON(``))
	assert.False(t, IsJSON(`{"a": }`))
	assert.False(t, IsJSON(`{'a': 1}`))
	assert.False(t, IsJSON(`{"a": 1`))
}
