package sinks

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestUDPSinkSendsEachSentenceAsOneDatagram(t *testing.T) {
	packetConn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer packetConn.Close()

	addr := packetConn.LocalAddr().(*net.UDPAddr)
	s, err := NewUDPSink(UDPConfig{Host: "127.0.0.1", Port: addr.Port})
	require.NoError(t, err)
	defer s.Close()

	s.Send("$GPGGA,udp*00")

	buf := make([]byte, 256)
	packetConn.SetReadDeadline(time.Now().Add(time.Second))
	n, _, err := packetConn.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "$GPGGA,udp*00\r\n", string(buf[:n]))
}

func TestUDPSinkSetsBroadcastSocketOptionWhenConfigured(t *testing.T) {
	s, err := NewUDPSink(UDPConfig{Host: "255.255.255.255", Port: 30123, Broadcast: true})
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 1, socketBroadcastOption(t, s))
}

func TestUDPSinkLeavesBroadcastSocketOptionUnsetByDefault(t *testing.T) {
	packetConn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer packetConn.Close()
	addr := packetConn.LocalAddr().(*net.UDPAddr)

	s, err := NewUDPSink(UDPConfig{Host: "127.0.0.1", Port: addr.Port})
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 0, socketBroadcastOption(t, s))
}

func socketBroadcastOption(t *testing.T, s *UDPSink) int {
	t.Helper()
	udpConn, ok := s.conn.(*net.UDPConn)
	require.True(t, ok)

	raw, err := udpConn.SyscallConn()
	require.NoError(t, err)

	var value int
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		value, sockErr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST)
	})
	require.NoError(t, err)
	require.NoError(t, sockErr)
	return value
}
