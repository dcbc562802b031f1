package serial

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tarm "github.com/tarm/serial"
)

type fakePort struct {
	bytes.Buffer
	writeErr error
	closes   int
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.Buffer.Write(p)
}

func (f *fakePort) Close() error {
	f.closes++
	return nil
}

func TestMirror_WriteTranslatesLineEndings(t *testing.T) {
	port := &fakePort{}
	m := New(port, "fake")

	n, err := m.Write([]byte("Toyota accélère à 10 km/h\n"))
	require.NoError(t, err)
	assert.Equal(t, len("Toyota accélère à 10 km/h\n"), n)
	assert.Equal(t, "Toyota accélère à 10 km/h\r\n", port.String())

	_, err = m.Write([]byte("a\r\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "Toyota accélère à 10 km/h\r\na\r\nb\r\n", port.String())
}

func TestMirror_WriteErrorIsSwallowed(t *testing.T) {
	port := &fakePort{writeErr: errors.New("unplugged")}
	m := New(port, "fake")

	var console bytes.Buffer
	w := io.MultiWriter(m, &console)

	_, err := w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", console.String())
}

func TestMirror_CloseOnce(t *testing.T) {
	port := &fakePort{}
	m := New(port, "fake")

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, 1, port.closes)

	n, err := m.Write([]byte("late\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Empty(t, port.String())
}

func TestOpen_Retries(t *testing.T) {
	origOpen, origDelay := openPort, retryDelay
	t.Cleanup(func() { openPort, retryDelay = origOpen, origDelay })
	retryDelay = 0

	attempts := 0
	port := &fakePort{}
	openPort = func(cfg *tarm.Config) (io.WriteCloser, error) {
		attempts++
		assert.Equal(t, "/dev/ttyUSB0", cfg.Name)
		assert.Equal(t, 9600, cfg.Baud)
		if attempts < 3 {
			return nil, errors.New("busy")
		}
		return port, nil
	}

	m, err := Open("/dev/ttyUSB0", 9600)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	_, err = m.Write([]byte("x\n"))
	require.NoError(t, err)
	assert.Equal(t, "x\r\n", port.String())
}

func TestOpen_GivesUp(t *testing.T) {
	origOpen, origDelay := openPort, retryDelay
	t.Cleanup(func() { openPort, retryDelay = origOpen, origDelay })
	retryDelay = 0

	busy := errors.New("busy")
	openPort = func(cfg *tarm.Config) (io.WriteCloser, error) {
		return nil, busy
	}

	m, err := Open("/dev/ttyUSB0", 9600)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, busy)
	assert.Contains(t, err.Error(), "after 3 attempts")
}
