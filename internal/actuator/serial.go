package actuator

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// -------------------- Serial port --------------------

// SerialPort writes frames to the guitar controller and numbers them.
type SerialPort struct {
	mu   sync.Mutex
	port io.WriteCloser
	seq  byte
	log  *zap.Logger
}

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(name string, baud int, log *zap.Logger) (*SerialPort, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("serial: port opened", zap.String("device", name), zap.Int("baud", baud))
	return NewSerialPort(p, log), nil
}

// NewSerialPort wraps an already open port.
func NewSerialPort(port io.WriteCloser, log *zap.Logger) *SerialPort {
	if log == nil {
		log = zap.NewNop()
	}
	return &SerialPort{port: port, log: log}
}

// NextSeq returns the sequence number for the next frame.
func (s *SerialPort) NextSeq() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Send encodes f and writes it to the port.
func (s *SerialPort) Send(f Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.port.Write(data)
	if err != nil {
		s.log.Error("serial: write error", zap.Error(err))
		return fmt.Errorf("serial write: %w", err)
	}
	s.log.Info("serial: frame sent", zap.Int("bytes", n), zap.Uint8("seq", f.Seq), zap.Uint8("strum_mask", f.StrumMask))
	return nil
}

// Close closes the underlying port.
func (s *SerialPort) Close() error {
	s.log.Info("serial: closing port")
	return s.port.Close()
}
