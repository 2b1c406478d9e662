package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePriority(t *testing.T) {
	cases := []struct {
		impact, urgency, want int
	}{
		{1, 1, 1}, {1, 2, 1}, {1, 3, 2}, {1, 4, 3},
		{2, 1, 1}, {2, 2, 2}, {2, 3, 2}, {2, 4, 3},
		{3, 1, 2}, {3, 2, 3}, {3, 3, 3}, {3, 4, 4},
		{4, 1, 3}, {4, 2, 3}, {4, 3, 4}, {4, 4, 4},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("impact=%d urgency=%d", tc.impact, tc.urgency), func(t *testing.T) {
			assert.Equal(t, tc.want, ComputePriority(tc.impact, tc.urgency))
		})
	}
}

func TestComputePriorityTotal(t *testing.T) {
	for impact := 1; impact <= 4; impact++ {
		for urgency := 1; urgency <= 4; urgency++ {
			got := ComputePriority(impact, urgency)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 4)
		}
	}
}
