package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "Berlin, Germany", JoinNonEmpty(", ", "Berlin", "", "Germany"))
	assert.Equal(t, "Berlin", JoinNonEmpty(", ", " Berlin ", "  "))
	assert.Equal(t, "", JoinNonEmpty(", "))
}
