package memregion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReservesRequestedSize(t *testing.T) {
	region, err := New(8192)
	require.NoError(t, err)
	defer region.Close()

	require.Equal(t, uintptr(8192), region.Size())
	require.Equal(t, region.Start()+8192, region.End())
}

func TestRegionIsWritable(t *testing.T) {
	region, err := New(4096)
	require.NoError(t, err)
	defer region.Close()

	buf := (*[4096]byte)(region.Base())
	buf[0] = 0xff
	buf[4095] = 0x42

	require.Equal(t, byte(0xff), buf[0])
	require.Equal(t, byte(0x42), buf[4095])
}

func TestCloseReleasesRegion(t *testing.T) {
	region, err := New(4096)
	require.NoError(t, err)
	require.NoError(t, region.Close())
}
