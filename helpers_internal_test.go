package tether

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTyped(t *testing.T) {
	v, err := typed[string]("value", "token")
	assert.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = typed[string](nil, "token")
	assert.NoError(t, err)
	assert.Empty(t, v)

	_, err = typed[string](42, "token")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
