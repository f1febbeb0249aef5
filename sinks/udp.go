package sinks

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

const udpSinkQueueSize = 256

// UDPConfig configures a UDPSink.
type UDPConfig struct {
	Host      string
	Port      int
	Broadcast bool
}

// UDPSink sends each sentence as a single datagram to Host:Port. No
// fragmentation is attempted at this layer: a sentence that does not fit in
// one datagram is an encode-time concern the caller must avoid.
type UDPSink struct {
	counters
	conn  net.Conn
	queue chan string
	done  chan struct{}
}

// NewUDPSink dials a UDP "connection" to host:port (UDP dial just fixes the
// peer address; no handshake occurs) and starts the sink's writer
// goroutine.
func NewUDPSink(cfg UDPConfig) (*UDPSink, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("sinks: udp sink: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("sinks: udp sink: %w", err)
	}
	if cfg.Broadcast {
		if err := setBroadcast(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sinks: udp sink: %w", err)
		}
	}
	s := &UDPSink{
		conn:  conn,
		queue: make(chan string, udpSinkQueueSize),
		done:  make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// setBroadcast requests the SO_BROADCAST socket option on conn's underlying
// file descriptor so datagrams to a subnet broadcast address are actually
// accepted by the kernel; dialing a broadcast address alone is not
// sufficient; without this option Write fails with EACCES/EPERM on Linux.
func setBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	}); err != nil {
		return err
	}
	return sockErr
}

func (s *UDPSink) Send(sentence string) {
	enqueue(s.queue, sentence, &s.dropped)
}

func (s *UDPSink) run() {
	defer close(s.done)
	for sentence := range s.queue {
		if _, err := s.conn.Write([]byte(sentence + "\r\n")); err != nil {
			s.errors.Add(1)
			continue
		}
		s.sent.Add(1)
	}
}

func (s *UDPSink) Close() error {
	close(s.queue)
	<-s.done
	return s.conn.Close()
}

func (s *UDPSink) Stats() SinkStats { return s.snapshot() }
