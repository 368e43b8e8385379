//go:build linux

package tap

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsLongName(t *testing.T) {
	_, err := Open(strings.Repeat("x", 32), 1500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestOpenTap(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("creating a tap device requires root")
	}
	if _, err := os.Stat("/dev/net/tun"); err != nil {
		t.Skip("/dev/net/tun not available")
	}

	dev, err := Open("vethtest0", 1500)
	require.NoError(t, err)
	defer dev.Close()

	assert.Equal(t, "vethtest0", dev.Name())
	assert.Equal(t, Driver, dev.Type())
	assert.Equal(t, 1500, dev.MTU())
}
