package sinks

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCPSinkDeliversSentencesToConnectedClientInOrder(t *testing.T) {
	s, err := NewTCPSink(TCPConfig{ListenAddr: "127.0.0.1:0"})
	require.NoError(t, err)
	defer s.Close()

	addr := s.listener.Addr().String()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		s.Send(sentenceFor(i))
	}

	reader := bufio.NewReader(conn)
	for i := 0; i < 5; i++ {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		require.Contains(t, line, sentenceFor(i))
	}
}

func TestTCPSinkDropsClientPastSendTimeout(t *testing.T) {
	s, err := NewTCPSink(TCPConfig{ListenAddr: "127.0.0.1:0", SendTimeout: time.Millisecond})
	require.NoError(t, err)
	defer s.Close()

	conn, err := net.Dial("tcp", s.listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, time.Millisecond)

	// Flood without reading so the client's TCP window fills and the
	// send-timeout deadline is exceeded, causing the server to drop it.
	for i := 0; i < 10000; i++ {
		s.Send("$GPGGA,flood*00")
	}

	require.Eventually(t, func() bool { return s.ClientCount() == 0 }, time.Second, time.Millisecond)
}

func TestTCPSinkDropsIdleClientPastClientTimeout(t *testing.T) {
	s, err := NewTCPSink(TCPConfig{ListenAddr: "127.0.0.1:0", ClientTimeout: 20 * time.Millisecond})
	require.NoError(t, err)
	defer s.Close()

	conn, err := net.Dial("tcp", s.listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, time.Millisecond)

	// Never call Send: the client should be dropped for going idle, even
	// though nothing ever fails a write.
	require.Eventually(t, func() bool { return s.ClientCount() == 0 }, time.Second, time.Millisecond)
}

func TestTCPSinkHonorsClientTimeoutAndSendTimeoutIndependently(t *testing.T) {
	s, err := NewTCPSink(TCPConfig{
		ListenAddr:    "127.0.0.1:0",
		ClientTimeout: time.Hour, // long enough that it would never fire in this test
		SendTimeout:   time.Millisecond,
	})
	require.NoError(t, err)
	defer s.Close()

	conn, err := net.Dial("tcp", s.listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, time.Millisecond)

	// Flood without reading so the client's TCP window fills and the
	// send-timeout deadline is exceeded. If ClientTimeout's long deadline
	// were clobbering SendTimeout's short one, this client would never be
	// dropped within the test's window.
	for i := 0; i < 10000; i++ {
		s.Send("$GPGGA,flood*00")
	}

	require.Eventually(t, func() bool { return s.ClientCount() == 0 }, time.Second, time.Millisecond)
}

func sentenceFor(i int) string {
	return "$GPGGA,sentence" + string(rune('0'+i)) + "*00"
}
