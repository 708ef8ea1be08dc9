package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	config, err := parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4221", config.Addr)
	assert.Equal(t, "", config.Directory)
	assert.Equal(t, "info", config.LogLevel)
}

func TestParseFlagsDirectory(t *testing.T) {
	config, err := parseFlags([]string{"--directory", "/tmp/data"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data", config.Directory)
	assert.Equal(t, "127.0.0.1:4221", config.Addr)

	config, err = parseFlags([]string{"-directory=/srv", "--addr", "127.0.0.1:0", "--log-level", "debug"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "/srv", config.Directory)
	assert.Equal(t, "127.0.0.1:0", config.Addr)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestParseFlagsUnknown(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := parseFlags([]string{"--port", "80"}, out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "port")
}

func TestRunExitsNonZeroOnBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	stderr := &bytes.Buffer{}
	code := run([]string{"--addr", ln.Addr().String()}, stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to bind")
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	stderr := &bytes.Buffer{}
	assert.Equal(t, 2, run([]string{"--log-level", "loud"}, stderr))
	assert.Contains(t, stderr.String(), "loud")
}
