package blocks

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecret_Masking(t *testing.T) {
	secret := NewSecret("hunter2")

	assert.Equal(t, "hunter2", secret.Get())
	assert.Equal(t, "**********", secret.String())
	assert.Equal(t, "**********", fmt.Sprintf("%v", secret))
	assert.Equal(t, "**********", fmt.Sprintf("%#v", secret))
	assert.NotContains(t, fmt.Sprintf("%s %v %#v", secret, secret, secret), "hunter2")
}

func TestSecret_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewSecret("p@ss"))
	require.NoError(t, err)

	restored := &Secret{}
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, "p@ss", restored.Get())
}
