package service_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotX12/subnetcalc/internal/domain"
	"github.com/dotX12/subnetcalc/internal/service"
)

func TestCanMerge(t *testing.T) {
	t.Parallel()

	aggregator := service.NewAggregatorService(zerolog.Nop())

	for _, test := range []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{name: "buddies", a: "192.168.0.0/25", b: "192.168.0.128/25", expected: true},
		{name: "buddies reversed", a: "192.168.0.128/25", b: "192.168.0.0/25", expected: true},
		{name: "buddy 24s", a: "10.0.0.0/24", b: "10.0.1.0/24", expected: true},
		// adjacent but not bit-aligned: 10.0.1.0/24's buddy is 10.0.0.0/24
		{name: "adjacent non buddies", a: "10.0.1.0/24", b: "10.0.2.0/24", expected: false},
		{name: "not adjacent", a: "192.168.1.0/24", b: "192.168.3.0/24", expected: false},
		{name: "different prefixes", a: "192.168.0.0/25", b: "192.168.0.128/26", expected: false},
		{name: "same network", a: "192.168.0.0/24", b: "192.168.0.0/24", expected: false},
	} {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			a := mustNetwork(t, test.a)
			b := mustNetwork(t, test.b)

			assert.Equal(t, test.expected, aggregator.CanMerge(a, b))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	aggregator := service.NewAggregatorService(zerolog.Nop())

	for _, test := range []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "buddy pair",
			input:    []string{"192.168.0.0/25", "192.168.0.128/25"},
			expected: []string{"192.168.0.0/24"},
		},
		{
			name:     "non buddies stay",
			input:    []string{"192.168.1.0/24", "192.168.3.0/24"},
			expected: []string{"192.168.1.0/24", "192.168.3.0/24"},
		},
		{
			name:     "cascading merge",
			input:    []string{"10.0.0.0/26", "10.0.0.64/26", "10.0.0.128/26", "10.0.0.192/26"},
			expected: []string{"10.0.0.0/24"},
		},
		{
			name:     "unsorted input",
			input:    []string{"10.0.1.0/24", "10.0.0.0/24"},
			expected: []string{"10.0.0.0/23"},
		},
		{
			name:     "duplicates dropped",
			input:    []string{"10.0.0.0/24", "10.0.0.0/24"},
			expected: []string{"10.0.0.0/24"},
		},
		{
			name:     "subsumed dropped",
			input:    []string{"10.0.0.0/16", "10.0.4.0/24"},
			expected: []string{"10.0.0.0/16"},
		},
		{
			name:     "partial merge",
			input:    []string{"172.16.0.0/24", "172.16.1.0/24", "172.16.2.0/24"},
			expected: []string{"172.16.0.0/23", "172.16.2.0/24"},
		},
		{
			name:     "single network",
			input:    []string{"192.168.5.0/24"},
			expected: []string{"192.168.5.0/24"},
		},
	} {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			networks := make([]domain.Network, 0, len(test.input))
			for _, s := range test.input {
				networks = append(networks, mustNetwork(t, s))
			}

			assert.Equal(t, test.expected, cidrs(aggregator.Summarize(networks)))
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	aggregator := service.NewAggregatorService(zerolog.Nop())
	assert.Nil(t, aggregator.Summarize(nil))
}

func TestSpan(t *testing.T) {
	t.Parallel()

	aggregator := service.NewAggregatorService(zerolog.Nop())

	for _, test := range []struct {
		name     string
		input    []string
		expected string
	}{
		{
			name:     "buddy pair spans exactly",
			input:    []string{"192.168.0.0/25", "192.168.0.128/25"},
			expected: "192.168.0.0/24",
		},
		{
			name:     "distant networks over-approximate",
			input:    []string{"10.1.0.0/24", "10.9.0.0/24"},
			expected: "10.0.0.0/12",
		},
		{
			name:     "single network",
			input:    []string{"172.16.0.0/22"},
			expected: "172.16.0.0/22",
		},
	} {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			networks := make([]domain.Network, 0, len(test.input))
			for _, s := range test.input {
				networks = append(networks, mustNetwork(t, s))
			}

			span, err := aggregator.Span(networks)
			require.NoError(t, err)
			assert.Equal(t, test.expected, span.String())

			for _, n := range networks {
				assert.True(t, span.ContainsNetwork(n))
			}
		})
	}
}

func TestSpanEmpty(t *testing.T) {
	t.Parallel()

	aggregator := service.NewAggregatorService(zerolog.Nop())

	_, err := aggregator.Span(nil)
	assert.ErrorAs(t, err, new(*domain.InvalidPrefixError))
}
