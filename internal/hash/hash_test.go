package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	sum := Hash(`{"cpu":[],"memory":[]}`, "secret")
	assert.Len(t, sum, 64)
	assert.Equal(t, sum, Hash(`{"cpu":[],"memory":[]}`, "secret"))
	assert.NotEqual(t, sum, Hash(`{"cpu":[],"memory":[]}`, "other"))
}
