package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EmptyOnCreation(t *testing.T) {
	q := NewQueue[string]()

	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_StrictFIFO(t *testing.T) {
	q := NewQueue[string]()
	q.Enqueue("requete_toulouse")
	q.Enqueue("requete_paris")

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "requete_toulouse", v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "requete_paris", v)
	assert.True(t, q.Empty())
}

func TestQueue_EnqueueDequeueOrder(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 20; i++ {
		q.Enqueue(i)
	}
	assert.Equal(t, 20, q.Len())

	for i := 0; i < 20; i++ {
		v, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DequeueEmpty(t *testing.T) {
	q := NewQueue[string]()

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestQueue_Peek(t *testing.T) {
	q := NewQueue[string]()
	q.Enqueue("x")
	q.Enqueue("y")

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.Equal(t, 2, q.Len(), "peek must not remove")
}

func TestQueue_PeekEmpty(t *testing.T) {
	q := NewQueue[string]()

	_, err := q.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestQueue_DrainThenReuse(t *testing.T) {
	q := NewQueue[int]()
	q.Enqueue(1)

	_, err := q.Dequeue()
	require.NoError(t, err)
	require.True(t, q.Empty())

	// The tail must have been cleared with the head; a fresh enqueue
	// starts a new chain rather than splicing onto a detached node.
	q.Enqueue(2)
	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestQueue_Iteration(t *testing.T) {
	q := NewQueue[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	var seen []int
	for v := range q.All() {
		seen = append(seen, v)
	}

	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 3, q.Len(), "iteration must not consume the queue")
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Clear()

	assert.True(t, q.Empty())

	_, err := q.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestQueue_InterleavedOperations(t *testing.T) {
	q := NewQueue[string]()
	q.Enqueue("a")
	q.Enqueue("b")

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	q.Enqueue("c")

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}
