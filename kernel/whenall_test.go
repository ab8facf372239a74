package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhenAllSliceReturnsResultsInOrder(t *testing.T) {
	children := []*Task[int]{
		NewTask("a", func(tc *TaskContext) (int, error) { return 1, nil }),
		NewTask("b", func(tc *TaskContext) (int, error) { return 2, nil }),
		NewTask("c", func(tc *TaskContext) (int, error) { return 3, nil }),
	}

	parent := NewTask("parent", func(tc *TaskContext) ([]int, error) {
		return WhenAllSlice(tc, children)
	})
	parent.Start()

	results, err := parent.Result()
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)
}

func TestWhenAllSliceEmptyCompletesImmediately(t *testing.T) {
	parent := NewTask("parent", func(tc *TaskContext) ([]int, error) {
		return WhenAllSlice[int](tc, nil)
	})
	parent.Start()
	results, err := parent.Result()
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestWhenAllSlicePropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	children := []*Task[int]{
		NewTask("a", func(tc *TaskContext) (int, error) { return 0, boom }),
		NewTask("b", func(tc *TaskContext) (int, error) { return 2, nil }),
	}

	parent := NewTask("parent", func(tc *TaskContext) ([]int, error) {
		return WhenAllSlice(tc, children)
	})
	parent.Start()

	_, err := parent.Result()
	assert.ErrorIs(t, err, boom)
}

func TestWhenAllReadySliceNeverFails(t *testing.T) {
	boom := errors.New("boom")
	children := []*Task[int]{
		NewTask("a", func(tc *TaskContext) (int, error) { return 0, boom }),
		NewTask("b", func(tc *TaskContext) (int, error) { return 2, nil }),
	}

	parent := NewTask("parent", func(tc *TaskContext) ([]*Task[int], error) {
		return WhenAllReadySlice(tc, children), nil
	})
	parent.Start()

	done, err := parent.Result()
	assert.NoError(t, err)
	assert.True(t, done[0].Done())
	assert.True(t, done[1].Done())
	_, e0 := done[0].Result()
	assert.ErrorIs(t, e0, boom)
}

func TestWhenAll2ReturnsTypedResult(t *testing.T) {
	ta := NewTask("a", func(tc *TaskContext) (int, error) { return 1, nil })
	tb := NewTask("b", func(tc *TaskContext) (string, error) { return "x", nil })

	parent := NewTask("parent", func(tc *TaskContext) (WhenAll2Result[int, string], error) {
		return WhenAll2(tc, ta, tb)
	})
	parent.Start()

	res, err := parent.Result()
	assert.NoError(t, err)
	assert.Equal(t, 1, res.A)
	assert.Equal(t, "x", res.B)
}
