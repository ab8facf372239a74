package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStartReturnsResult(t *testing.T) {
	tk := NewTask("t", func(tc *TaskContext) (int, error) {
		return 42, nil
	})
	tk.Start()
	assert.True(t, tk.Done())
	v, err := tk.Result()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestTaskCapturesPanicAsError(t *testing.T) {
	boom := errors.New("boom")
	tk := NewTask("t", func(tc *TaskContext) (int, error) {
		panic(boom)
	})
	tk.Start()
	_, err := tk.Result()
	assert.ErrorIs(t, err, boom)
}

func TestTaskStartTwiceIsContractError(t *testing.T) {
	tk := NewTask("t", func(tc *TaskContext) (int, error) { return 0, nil })
	tk.Start()
	assert.PanicsWithError(t, newContractError("task %q started twice", "t").Error(), func() {
		tk.Start()
	})
}

func TestAwaitUnstartedTaskSymmetricTransfer(t *testing.T) {
	child := NewTask("child", func(tc *TaskContext) (string, error) {
		return "hello", nil
	})
	parent := NewTask("parent", func(tc *TaskContext) (string, error) {
		v, err := Await(tc, child)
		return v, err
	})
	parent.Start()
	v, err := parent.Result()
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.True(t, child.Done())
}

func TestAwaitAlreadyDoneTaskReturnsImmediately(t *testing.T) {
	child := NewTask("child", func(tc *TaskContext) (int, error) { return 7, nil })
	child.Start()

	parent := NewTask("parent", func(tc *TaskContext) (int, error) {
		return Await(tc, child)
	})
	parent.Start()
	v, err := parent.Result()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

// TestAwaitLongChainDoesNotBlock verifies that a long chain of
// sequential awaits completes without deadlock or growing resources
// proportional to chain length (within reason for a test).
func TestAwaitLongChainDoesNotBlock(t *testing.T) {
	const n = 2000

	var leaves []*Task[int]
	for i := 0; i < n; i++ {
		i := i
		leaves = append(leaves, NewTask("leaf", func(tc *TaskContext) (int, error) {
			return i, nil
		}))
	}

	var build func(i int) *Task[int]
	build = func(i int) *Task[int] {
		if i == n-1 {
			return leaves[i]
		}
		return NewTask("link", func(tc *TaskContext) (int, error) {
			return Await(tc, build(i+1))
		})
	}

	root := build(0)
	root.Start()
	v, err := root.Result()
	assert.NoError(t, err)
	assert.Equal(t, n-1, v)
}
