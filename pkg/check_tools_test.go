package pkg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

func TestCheckTools(t *testing.T) {
	// echo is a shell builtin, so it's always available
	statuses := CheckTools(context.Background(), &shell.Runner{}, "echo", "missing-translator-4711")
	require.Len(t, statuses, 2)

	assert.Equal(t, "echo", statuses[0].Name)
	assert.NoError(t, statuses[0].Err)
	assert.Equal(t, "--version", statuses[0].Version)

	assert.Equal(t, "missing-translator-4711", statuses[1].Name)
	assert.True(t, errors.Is(statuses[1].Err, shell.ErrToolNotFound))
	assert.Empty(t, statuses[1].Version)
}
