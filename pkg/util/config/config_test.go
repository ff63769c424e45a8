package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	os.Unsetenv(EnvConfigFile)
	config = make(map[string]interface{})

	// Read config without setting config file
	{
		SetConfigFile("")
		err := ReadInConfig()
		require.NoError(t, err)
		assert.Equal(t, 0, len(config))
	}

	// Read config from file
	{
		SetConfigFile("testdata/ok.json")
		err := ReadInConfig()
		require.NoError(t, err)
		assert.Equal(t, 2, len(config))
	}

	// Read config from file named by env
	{
		SetConfigFile("")
		os.Setenv(EnvConfigFile, "testdata/ok.json")
		defer os.Unsetenv(EnvConfigFile)
		config = make(map[string]interface{})
		err := ReadInConfig()
		require.NoError(t, err)
		assert.Equal(t, 2, len(config))
	}

	// Missing file
	{
		SetConfigFile("testdata/missing.json")
		err := ReadInConfig()
		require.Error(t, err)
	}

	// Not valid json
	{
		r := strings.NewReader(`{"keystr":"foo","keybool":f`)
		err := ReadConfig(r)
		require.Error(t, err)
	}
	SetConfigFile("")
}

func TestGet(t *testing.T) {
	config = make(map[string]interface{})
	//Empty config
	v := Get("key")
	assert.Nil(t, v)

	config = map[string]interface{}{
		"keyint": 1,
		"keymap": map[string]interface{}{
			"keystr":  "str",
			"keybool": true,
		},
	}
	// Check keyint
	vInt, isInt := Get("keyint").(int)
	require.True(t, isInt)
	assert.Equal(t, 1, vInt)

	// Subpath missing
	v = Get("keyint.sub")
	assert.Nil(t, v)

	// Subpath OK
	vBool, isBool := Get("keymap.keybool").(bool)
	require.True(t, isBool)
	assert.True(t, vBool)

	// Strings
	s, err := GetString("keymap.keystr")
	require.NoError(t, err)
	assert.Equal(t, "str", s)
	_, err = GetString("keyint")
	require.Error(t, err)
	s, err = GetString("missing")
	require.NoError(t, err)
	assert.Empty(t, s)
}

type s struct {
	KeyStr   string        `mapstructure:"keystr"`
	KeyBool  bool          `mapstructure:"keybool"`
	KeyEnv   string        `mapstructure:"keyenv" env:"KEY_ENV"`
	KeyDur   time.Duration `mapstructure:"keydur"`
	KeySlice []string      `mapstructure:"keyslice"`
}

func TestUnmarshal(t *testing.T) {
	config = map[string]interface{}{
		"keyint": 1,
		"keymap": map[string]interface{}{
			"keystr":   "str",
			"keybool":  "true",
			"keydur":   "30s",
			"keyslice": "a,b",
		},
	}

	var v1 s
	err := Unmarshal("keyint", &v1)
	require.Error(t, err)

	var v2 s
	os.Setenv("KEY_ENV", "foo")
	defer os.Unsetenv("KEY_ENV")
	err = Unmarshal("keymap", &v2)
	require.NoError(t, err)
	assert.True(t, v2.KeyBool)
	assert.Equal(t, "foo", v2.KeyEnv)
	assert.Equal(t, 30*time.Second, v2.KeyDur)
	assert.Equal(t, []string{"a", "b"}, v2.KeySlice)

	// env.Parse error
	var v3 s
	err = Unmarshal("keynil", v3)
	require.Error(t, err)
}
