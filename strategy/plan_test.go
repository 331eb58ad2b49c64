package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanByCount(t *testing.T) {
	t.Run("capacity is ceil of participants over count", func(t *testing.T) {
		plan, err := PlanByCount(10, 3)

		require.NoError(t, err)
		require.Equal(t, 3, plan.GroupCount)
		require.Equal(t, 4, plan.GroupCapacity)
	})

	t.Run("exact division", func(t *testing.T) {
		plan, err := PlanByCount(4, 2)

		require.NoError(t, err)
		require.Equal(t, 2, plan.GroupCapacity)
	})

	t.Run("empty roster keeps group count", func(t *testing.T) {
		plan, err := PlanByCount(0, 2)

		require.NoError(t, err)
		require.Equal(t, 2, plan.GroupCount)
		require.Equal(t, 1, plan.GroupCapacity)
	})

	t.Run("rejects non-positive count", func(t *testing.T) {
		_, err := PlanByCount(10, 0)

		require.ErrorIs(t, err, ErrInvalidPlan)
	})
}

func TestPlanBySize(t *testing.T) {
	t.Run("count is ceil of participants over size", func(t *testing.T) {
		plan, err := PlanBySize(10, 4)

		require.NoError(t, err)
		require.Equal(t, 3, plan.GroupCount)
		require.Equal(t, 4, plan.GroupCapacity)
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := PlanBySize(10, -1)

		require.ErrorIs(t, err, ErrInvalidPlan)
	})
}
