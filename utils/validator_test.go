package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Level string `validate:"oneof=low high"`
	Count int    `validate:"min=1"`
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	msgs, err := FieldErrors(sample{Name: "ok", Level: "low", Count: 1})
	require.NoError(t, err)
	assert.Nil(t, msgs)

	msgs, err = FieldErrors(sample{Name: "toolong", Level: "mid"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Name: must be at most 5",
		"Level: must be one of [low high]",
		"Count: must be at least 1",
	}, msgs)

	assert.Error(t, ValidateStruct(sample{}))
}
