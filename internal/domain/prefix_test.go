package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotX12/subnetcalc/internal/domain"
)

func TestPrefixMask(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		prefix   domain.Prefix
		expected uint32
	}{
		{prefix: 0, expected: 0x00000000},
		{prefix: 1, expected: 0x80000000},
		{prefix: 8, expected: 0xFF000000},
		{prefix: 12, expected: 0xFFF00000},
		{prefix: 24, expected: 0xFFFFFF00},
		{prefix: 30, expected: 0xFFFFFFFC},
		{prefix: 31, expected: 0xFFFFFFFE},
		{prefix: 32, expected: 0xFFFFFFFF},
	} {
		test := test

		t.Run(test.prefix.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expected, test.prefix.Mask())
			assert.Equal(t, domain.Address(^test.expected), test.prefix.Wildcard())
		})
	}
}

func TestPrefixMaskAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "255.255.255.0", domain.Prefix(24).MaskAddress().String())
	assert.Equal(t, "0.0.0.255", domain.Prefix(24).Wildcard().String())
	assert.Equal(t, "255.255.192.0", domain.Prefix(18).MaskAddress().String())
}

func TestNewPrefix(t *testing.T) {
	t.Parallel()

	for _, p := range []int{0, 1, 16, 32} {
		_, err := domain.NewPrefix(p)
		assert.NoError(t, err)
	}

	for _, p := range []int{-1, 33, 128} {
		_, err := domain.NewPrefix(p)

		var prefixErr *domain.InvalidPrefixError
		require.ErrorAs(t, err, &prefixErr)
		assert.Equal(t, p, prefixErr.Prefix)
	}
}

func TestHostCapacity(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		prefix   domain.Prefix
		expected uint64
	}{
		{prefix: 32, expected: 1},
		{prefix: 31, expected: 2},
		{prefix: 30, expected: 2},
		{prefix: 24, expected: 254},
		{prefix: 16, expected: 65534},
		{prefix: 0, expected: 4294967294},
	} {
		test := test

		t.Run(test.prefix.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expected, test.prefix.HostCapacity())
		})
	}
}

func TestPrefixForHosts(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		hosts    int
		expected domain.Prefix
	}{
		{hosts: 1, expected: 32},
		{hosts: 2, expected: 31},
		{hosts: 3, expected: 29},
		{hosts: 6, expected: 29},
		{hosts: 7, expected: 28},
		{hosts: 14, expected: 28},
		{hosts: 30, expected: 27},
		{hosts: 50, expected: 26},
		{hosts: 62, expected: 26},
		{hosts: 63, expected: 25},
		{hosts: 100, expected: 25},
		{hosts: 126, expected: 25},
		{hosts: 127, expected: 24},
		{hosts: 254, expected: 24},
		{hosts: 500, expected: 23},
		{hosts: 65534, expected: 16},
		{hosts: 4294967294, expected: 0},
	} {
		test := test

		t.Run(fmt.Sprintf("%d", test.hosts), func(t *testing.T) {
			t.Parallel()

			prefix, err := domain.PrefixForHosts(test.hosts)
			require.NoError(t, err)
			assert.Equal(t, test.expected, prefix)

			// the chosen block fits the request, the next longer one does not
			assert.GreaterOrEqual(t, prefix.HostCapacity(), uint64(test.hosts))
			if prefix < 32 {
				assert.Less(t, (prefix + 1).HostCapacity(), uint64(test.hosts))
			}
		})
	}
}

func TestPrefixForHostsErrors(t *testing.T) {
	t.Parallel()

	for _, hosts := range []int{0, -5, 4294967295} {
		hosts := hosts

		t.Run(fmt.Sprintf("%d", hosts), func(t *testing.T) {
			t.Parallel()

			_, err := domain.PrefixForHosts(hosts)

			var prefixErr *domain.InvalidPrefixError
			assert.ErrorAs(t, err, &prefixErr)
		})
	}
}
