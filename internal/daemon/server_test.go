package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/events"
)

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "test-mytasks.sock")

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	return server, socketPath
}

type rawClient struct {
	conn    net.Conn
	encoder *json.Encoder
	msgs    chan events.Message
}

// connectRawClient dials the daemon and decodes everything it sends in the background
func connectRawClient(t *testing.T, server *Server, socketPath string) *rawClient {
	t.Helper()

	before := server.getClientCount()
	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	rc := &rawClient{conn: conn, encoder: json.NewEncoder(conn), msgs: make(chan events.Message, 10)}
	go func() {
		decoder := json.NewDecoder(conn)
		for {
			var msg events.Message
			if err := decoder.Decode(&msg); err != nil {
				close(rc.msgs)
				return
			}
			rc.msgs <- msg
		}
	}()

	require.Eventually(t, func() bool {
		return server.getClientCount() > before
	}, 2*time.Second, 10*time.Millisecond)

	return rc
}

func (rc *rawClient) publish(t *testing.T) {
	t.Helper()
	ev := events.TasksChanged()
	require.NoError(t, rc.encoder.Encode(events.Message{Version: events.ProtocolVersion, Type: "event", Event: &ev}))
}

func (rc *rawClient) expectEvent(t *testing.T) events.Event {
	t.Helper()
	select {
	case msg, ok := <-rc.msgs:
		require.True(t, ok, "connection closed")
		require.Equal(t, "event", msg.Type)
		require.NotNil(t, msg.Event)
		return *msg.Event
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return events.Event{}
	}
}

func (rc *rawClient) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case msg := <-rc.msgs:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestNewServer_CreatesNestedDirectories(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "subdirs", "mytasks.sock")

	server, err := NewServer(nestedPath)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	_, err = os.Stat(nestedPath)
	assert.NoError(t, err)
}

func TestNewServer_RemovesStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "stale.sock")
	require.NoError(t, os.WriteFile(socketPath, nil, 0o600))

	server, err := NewServer(socketPath)
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	info, err := os.Stat(socketPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSocket)
}

func TestNewServer_EnvVarConfiguration(t *testing.T) {
	t.Setenv("MYTASKS_DAEMON_BROADCAST_BUFFER", "7")
	t.Setenv("MYTASKS_DAEMON_CLIENT_BUFFER", "3")

	server, err := NewServer(filepath.Join(t.TempDir(), "env.sock"))
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	assert.Equal(t, 7, cap(server.broadcast))
	assert.Equal(t, 3, server.clientBufferSize)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("MYTASKS_TEST_INT", "not-a-number")
	assert.Equal(t, 5, getEnvInt("MYTASKS_TEST_INT", 5))

	t.Setenv("MYTASKS_TEST_INT", "-1")
	assert.Equal(t, 5, getEnvInt("MYTASKS_TEST_INT", 5))

	t.Setenv("MYTASKS_TEST_INT", "12")
	assert.Equal(t, 12, getEnvInt("MYTASKS_TEST_INT", 5))
}

func TestClientDisconnection(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	rc := connectRawClient(t, server, socketPath)
	require.Equal(t, int32(1), server.Metrics().ConnectedClients.Load())

	require.NoError(t, rc.conn.Close())

	require.Eventually(t, func() bool {
		return server.getClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), server.Metrics().ConnectedClients.Load())
}

func TestBroadcast_SkipsSender(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	sender := connectRawClient(t, server, socketPath)
	other := connectRawClient(t, server, socketPath)

	sender.publish(t)

	ev := other.expectEvent(t)
	assert.Equal(t, events.EventTasksChanged, ev.Type)
	assert.Equal(t, "tasks", ev.Table)
	assert.Equal(t, os.Getpid(), ev.Origin)
	sender.expectNothing(t)

	assert.Equal(t, int64(1), server.Metrics().EventsReceived.Load())
}

func TestBroadcast_SequenceNumbersIncrease(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	sender := connectRawClient(t, server, socketPath)
	other := connectRawClient(t, server, socketPath)

	for i := 0; i < 3; i++ {
		sender.publish(t)
	}

	var last int64
	for i := 0; i < 3; i++ {
		ev := other.expectEvent(t)
		assert.Greater(t, ev.SequenceID, last)
		last = ev.SequenceID
	}
}

func TestBroadcast_ServerOriginReachesEveryone(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	a := connectRawClient(t, server, socketPath)
	b := connectRawClient(t, server, socketPath)

	require.NoError(t, server.Broadcast(events.TasksChanged()))

	a.expectEvent(t)
	b.expectEvent(t)
}

func TestBroadcast_WithEventClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	listener := connectRawClient(t, server, socketPath)

	client, err := events.NewClient(socketPath, 10*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Connect(context.Background()))

	require.NoError(t, client.SendEvent(events.TasksChanged()))

	ev := listener.expectEvent(t)
	assert.Equal(t, events.EventTasksChanged, ev.Type)
}

func TestSendToClient_AfterRemoveIsSafe(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	connectRawClient(t, server, socketPath)

	clients := server.snapshotClients()
	require.Len(t, clients, 1)
	c := clients[0]

	server.removeClient(c)
	server.removeClient(c)

	assert.False(t, server.sendToClient(c, events.Message{Type: "ping"}))
}

func TestShutdown_ClosesClientsAndSocket(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	rc := connectRawClient(t, server, socketPath)

	require.NoError(t, server.Shutdown())
	require.NoError(t, server.Shutdown())

	select {
	case _, ok := <-rc.msgs:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("client connection was not closed")
	}

	_, err := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err))
}
