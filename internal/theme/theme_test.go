package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissyi-gh/taskdeck/internal/storage"
)

func TestLoadDefaultsToLight(t *testing.T) {
	kv, err := storage.OpenSession()
	require.NoError(t, err)
	defer kv.Close()

	assert.Equal(t, Light, Load(kv))

	require.NoError(t, kv.Put(storage.KeyTheme, []byte(`"sepia"`)))
	assert.Equal(t, Light, Load(kv))

	require.NoError(t, kv.Put(storage.KeyTheme, []byte(`not json`)))
	assert.Equal(t, Light, Load(kv))
}

func TestSaveAndToggle(t *testing.T) {
	kv, err := storage.OpenSession()
	require.NoError(t, err)
	defer kv.Close()

	next := Load(kv).Toggle()
	require.NoError(t, Save(kv, next))
	assert.Equal(t, Dark, Load(kv))
	assert.Equal(t, Light, Dark.Toggle())
}
