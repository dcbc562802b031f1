package serial

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"voiture/pkg/log"

	"github.com/tarm/serial"
	"go.uber.org/zap"
)

const CRLF = "\r\n"

var (
	maxRetries = 3
	retryDelay = 2 * time.Second
	openPort   = func(cfg *serial.Config) (io.WriteCloser, error) {
		return serial.OpenPort(cfg)
	}
)

// Mirror copies status lines to a serial device, such as a dashboard
// display wired to the car. Write failures are logged and dropped.
type Mirror struct {
	mu       sync.Mutex
	port     io.WriteCloser
	portName string
	closed   bool
}

// Open opens the port as 8N1 at the given baud rate.
func Open(portName string, baud int) (*Mirror, error) {
	cfg := &serial.Config{
		Name:        portName,
		Baud:        baud,
		ReadTimeout: time.Second,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}

	var p io.WriteCloser
	var err error
	for i := 0; i < maxRetries; i++ {
		p, err = openPort(cfg)
		if err == nil {
			break
		}
		log.Warn("Failed to open port, retrying...", zap.String("port", portName), zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s after %d attempts: %w", portName, maxRetries, err)
	}

	log.Info("[Serial] Port opened", zap.String("port", portName), zap.Int("baud", baud))
	return New(p, portName), nil
}

// New wraps an already opened port.
func New(port io.WriteCloser, portName string) *Mirror {
	return &Mirror{
		port:     port,
		portName: portName,
	}
}

// Write sends p with line feeds expanded to CRLF. It always reports the
// full length of p so that it can sit in an io.MultiWriter.
func (m *Mirror) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		log.Debug("Dropping write on closed port", zap.String("port", m.portName))
		return len(p), nil
	}

	full := toCRLF(p)
	n, err := m.port.Write(full)
	switch {
	case err != nil:
		log.Error("Write failed", zap.String("port", m.portName), zap.Error(err))
	case n != len(full):
		log.Warn("Incomplete write", zap.String("port", m.portName), zap.Int("written", n), zap.Int("bytes", len(full)))
	default:
		log.Debug("Line sent", zap.String("port", m.portName), zap.Int("bytes", n))
	}
	return len(p), nil
}

// Close closes the underlying port. Later calls are no-ops.
func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if err := m.port.Close(); err != nil {
		return fmt.Errorf("failed to close port %s: %w", m.portName, err)
	}
	return nil
}

func toCRLF(p []byte) []byte {
	p = bytes.ReplaceAll(p, []byte(CRLF), []byte("\n"))
	return bytes.ReplaceAll(p, []byte("\n"), []byte(CRLF))
}
