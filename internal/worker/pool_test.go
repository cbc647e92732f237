package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutePreservesOrder(t *testing.T) {
	p := NewPool("square", 4, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	jobs := p.Execute(context.Background(), []int{1, 2, 3, 4, 5, 6, 7})
	require.Len(t, jobs, 7)
	for i, j := range jobs {
		assert.True(t, j.Done)
		assert.NoError(t, j.Err)
		assert.Equal(t, (i+1)*(i+1), j.Result)
		assert.Equal(t, i+1, j.Input)
	}
}

func TestExecuteReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	p := NewPool("odd", 0, func(ctx context.Context, n int) (string, error) {
		if n%2 == 1 {
			return "", boom
		}
		return "even", nil
	})

	jobs := p.Execute(context.Background(), []int{1, 2})
	assert.ErrorIs(t, jobs[0].Err, boom)
	assert.Equal(t, "even", jobs[1].Result)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool("noop", 2, func(ctx context.Context, n int) (int, error) { return n, nil })
	jobs := p.Execute(ctx, []int{1, 2, 3})

	require.Len(t, jobs, 3)
	for i, j := range jobs {
		assert.Equal(t, i+1, j.Input)
		if j.Done {
			assert.Equal(t, j.Input, j.Result)
		} else {
			assert.Zero(t, j.Result)
		}
	}
}

func TestExecuteEmpty(t *testing.T) {
	p := NewPool("noop", 2, func(ctx context.Context, n int) (int, error) { return n, nil })
	assert.Empty(t, p.Execute(context.Background(), nil))
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}
