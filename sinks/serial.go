package sinks

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

const serialSinkQueueSize = 256

// SerialConfig configures a SerialSink.
type SerialConfig struct {
	Device               string
	Baud                 int
	DataBits             int
	Parity               string // no_parity|odd_parity|even_parity|mark_parity|space_parity
	StopBits             float32
	ReconnectDelay       time.Duration
	MaxReconnectAttempts int // negative means retry indefinitely
	SendInterval         time.Duration
}

func (cfg SerialConfig) mode() (*serial.Mode, error) {
	mode := &serial.Mode{BaudRate: cfg.Baud}
	if mode.BaudRate == 0 {
		mode.BaudRate = 9600
	}
	if cfg.DataBits > 0 {
		mode.DataBits = cfg.DataBits
	}
	switch cfg.Parity {
	case "", "no_parity":
		mode.Parity = serial.NoParity
	case "odd_parity":
		mode.Parity = serial.OddParity
	case "even_parity":
		mode.Parity = serial.EvenParity
	case "mark_parity":
		mode.Parity = serial.MarkParity
	case "space_parity":
		mode.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("sinks: serial sink: illegal parity value %q", cfg.Parity)
	}
	switch cfg.StopBits {
	case 0, 1:
		mode.StopBits = serial.OneStopBit
	case 1.5:
		mode.StopBits = serial.OnePointFiveStopBits
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("sinks: serial sink: illegal stop bits value %v", cfg.StopBits)
	}
	return mode, nil
}

// SerialSink writes each sentence to a serial device, reconnecting with a
// delay on transient write failure. Grounded on the reconnect-and-retry
// loop in apps/serial_usb_grabber/main.go's GrabFromPorts/GetConnection,
// adapted from read-and-forward to accept-and-write.
type SerialSink struct {
	counters
	cfg   SerialConfig
	mode  *serial.Mode
	queue chan string
	stop  chan struct{} // closed by Close to abort a pending reconnect wait
	done  chan struct{} // closed by run on exit

	lastWrite time.Time
}

// NewSerialSink validates cfg and starts the sink's writer goroutine. The
// device is opened lazily by the writer goroutine so that a device that is
// briefly absent at startup does not become an io-fatal error; a device
// that never appears is reported via rising Errors/Dropped counters
// instead.
func NewSerialSink(cfg SerialConfig) (*SerialSink, error) {
	mode, err := cfg.mode()
	if err != nil {
		return nil, err
	}
	s := &SerialSink{
		cfg:   cfg,
		mode:  mode,
		queue: make(chan string, serialSinkQueueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *SerialSink) Send(sentence string) {
	enqueue(s.queue, sentence, &s.dropped)
}

func (s *SerialSink) run() {
	defer close(s.done)

	port, ok := s.openWithRetry()
	if !ok {
		// Drain without writing so Close doesn't block forever.
		for range s.queue {
			s.dropped.Add(1)
		}
		return
	}
	defer func() {
		if port != nil {
			port.Close()
		}
	}()

	for sentence := range s.queue {
		if s.cfg.SendInterval > 0 {
			if wait := s.cfg.SendInterval - time.Since(s.lastWrite); wait > 0 {
				time.Sleep(wait)
			}
		}
		if _, err := port.Write([]byte(sentence + "\r\n")); err != nil {
			s.errors.Add(1)
			port.Close()
			port, ok = s.openWithRetry()
			if !ok {
				s.dropped.Add(1)
				for range s.queue {
					s.dropped.Add(1)
				}
				return
			}
			continue
		}
		s.lastWrite = time.Now()
		s.sent.Add(1)
	}
}

// openWithRetry opens the configured device, retrying after ReconnectDelay
// up to MaxReconnectAttempts times (or indefinitely if negative). It
// returns false once Close has been called (s.stop is closed) or the
// attempt budget is exhausted.
func (s *SerialSink) openWithRetry() (serial.Port, bool) {
	attempts := 0
	for {
		port, err := serial.Open(s.cfg.Device, s.mode)
		if err == nil {
			return port, true
		}
		s.errors.Add(1)
		attempts++
		if s.cfg.MaxReconnectAttempts >= 0 && attempts > s.cfg.MaxReconnectAttempts {
			return nil, false
		}
		select {
		case <-s.stop:
			return nil, false
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
}

func (s *SerialSink) Close() error {
	close(s.stop)
	close(s.queue)
	<-s.done
	return nil
}

func (s *SerialSink) Stats() SinkStats { return s.snapshot() }
