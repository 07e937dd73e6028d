package uart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// openPty returns the master fd and the path of the slave side of a new
// pseudo terminal, or skips the test if the platform has none.
func openPty(t *testing.T) (int, string) {
	t.Helper()
	m, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		t.Skipf("no pseudo terminals: %v", err)
	}
	t.Cleanup(func() { unix.Close(m) })
	require.Nil(t, unix.IoctlSetPointerInt(m, unix.TIOCSPTLCK, 0))
	n, err := unix.IoctlGetInt(m, unix.TIOCGPTN)
	require.Nil(t, err)
	return m, fmt.Sprintf("/dev/pts/%d", n)
}

func readN(t *testing.T, fd, n int) []byte {
	t.Helper()
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		r, err := unix.Read(fd, buf[:n-len(out)])
		require.Nil(t, err)
		out = append(out, buf[:r]...)
	}
	return out
}

func TestOpenMissingDevice(t *testing.T) {
	p, err := Open("/dev/tty-not-there", DefaultBaud)
	assert.NotNil(t, err)
	assert.Nil(t, p)
}

func TestOpenNotATerminal(t *testing.T) {
	p, err := Open("/dev/null", DefaultBaud)
	assert.NotNil(t, err)
	assert.Nil(t, p)
}

func TestPtyWrite(t *testing.T) {
	m, slave := openPty(t)
	p, err := Open(slave, DefaultBaud)
	require.Nil(t, err)
	defer p.Close()

	msg := []byte("Voltage: 0.7331V")
	n, err := p.Write(msg)
	require.Nil(t, err)
	assert.Equal(t, len(msg), n)
	assert.Equal(t, msg, readN(t, m, len(msg)))
}

func TestPtyTransmit(t *testing.T) {
	m, slave := openPty(t)
	p, err := Open(slave, 115200)
	require.Nil(t, err)
	defer p.Close()

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 1)
		n, _ := unix.Read(m, buf)
		got <- buf[:n]
	}()
	require.Nil(t, p.Transmit('A'))
	assert.Equal(t, []byte{'A'}, <-got)
}
