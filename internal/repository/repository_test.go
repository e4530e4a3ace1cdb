package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_Defaults(t *testing.T) {
	p := NewPage(0, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPage_ClampsNegatives(t *testing.T) {
	p := NewPage(-3, -1)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 10, p.Limit)
	assert.GreaterOrEqual(t, p.Offset(), 0)
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPage(1, 10).Offset())
	assert.Equal(t, 10, NewPage(2, 10).Offset())
	assert.Equal(t, 35, NewPage(8, 5).Offset())
}

func TestPage_LastPage(t *testing.T) {
	p := NewPage(1, 10)
	assert.Equal(t, 0, p.LastPage(0))
	assert.Equal(t, 1, p.LastPage(1))
	assert.Equal(t, 1, p.LastPage(10))
	assert.Equal(t, 2, p.LastPage(11))
	assert.Equal(t, 3, p.LastPage(25))
}
