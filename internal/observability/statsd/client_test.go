package statsd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{prefix: "squidword", name: "auth.login", want: "squidword.auth.login"},
		{prefix: "", name: " auth/login ", want: "auth_login"},
		{prefix: "app", name: "auth..login.", want: "app.auth.login"},
		{prefix: "app", name: "multi  space", want: "app.multi__space"},
		{prefix: "app", name: "  ", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metricName(tt.prefix, tt.name), "%q + %q", tt.prefix, tt.name)
	}
}

func TestRenderTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{"env": "prod", " service ": " squidword "}
	local := map[string]string{"result": " success ", "": "ignored", "env": "stage"}

	assert.Equal(t, "|#env:stage,result:success,service:squidword", renderTags(global, local))
	assert.Empty(t, renderTags(nil, nil))
}

func TestClientLine(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), Config{Prefix: ".squidword.", GlobalTags: map[string]string{"env": "test"}})
	require.NoError(t, err)

	assert.Equal(t, "squidword.auth.login:1|c|#env:test,result:success",
		c.line("auth.login", "1", "c", map[string]string{"result": "success"}))
	assert.Empty(t, c.line("", "1", "c", nil))
}

func TestClientWritesDatagrams(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(context.Background(), Config{Enabled: true, Address: pc.LocalAddr().String(), Prefix: "squidword"})
	require.NoError(t, err)
	defer c.Close()
	require.True(t, c.Enabled())

	c.Count("auth.login", 1, map[string]string{"result": "success"})
	c.Timing("auth.login.duration", 1500*time.Microsecond, nil)

	buf := make([]byte, 512)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "squidword.auth.login:1|c|#result:success", string(buf[:n]))

	n, _, err = pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "squidword.auth.login.duration:1.5|ms", string(buf[:n]))
}

func TestClientDisabled(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
	c.Count("auth.login", 1, nil)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	nilClient.Count("auth.login", 1, nil)
	nilClient.Timing("auth.login.duration", time.Second, nil)
	assert.NoError(t, nilClient.Close())
}

func TestClientCloseIdempotent(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()
	c := &Client{conn: clientConn}

	require.True(t, c.Enabled())
	require.NoError(t, c.Close())
	assert.False(t, c.Enabled())
	assert.NoError(t, c.Close())
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd dial")
}
