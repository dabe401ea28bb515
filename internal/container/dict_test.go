package container

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDict_EmptyOnCreation(t *testing.T) {
	d := NewDict[string, int](0)

	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Len())
}

func TestDict_PutGet(t *testing.T) {
	d := NewDict[string, string](16)
	d.Put("station_42", "donnees_compans")
	d.Put("station_2", "donnees_marengo")

	v, err := d.Get("station_42")
	require.NoError(t, err)
	assert.Equal(t, "donnees_compans", v)

	v, err = d.Get("station_2")
	require.NoError(t, err)
	assert.Equal(t, "donnees_marengo", v)

	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Contains("station_42"))
}

func TestDict_PutOverwritesExistingKey(t *testing.T) {
	d := NewDict[string, string](16)
	d.Put("station_42", "old")
	d.Put("station_42", "new")

	v, err := d.Get("station_42")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, d.Len(), "overwrite must not create a duplicate pair")
}

func TestDict_GetMissingKey(t *testing.T) {
	d := NewDict[string, int](16)

	_, err := d.Get("absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDict_Remove(t *testing.T) {
	d := NewDict[string, string](16)
	d.Put("key", "value")

	v, err := d.Remove("key")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.True(t, d.Empty())
	assert.False(t, d.Contains("key"))

	_, err = d.Get("key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDict_RemoveMissingKey(t *testing.T) {
	d := NewDict[string, int](16)

	_, err := d.Remove("absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDict_CollisionsInSingleBucket(t *testing.T) {
	// Capacity 1 forces every key into the same bucket, exercising the
	// chain scan on every operation.
	d := NewDict[string, int](1)
	d.Put("a", 1)
	d.Put("b", 2)
	d.Put("c", 3)

	assert.Equal(t, 3, d.Len())

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, err := d.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	// Removing one colliding key must not disturb the others.
	v, err := d.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, d.Len())

	v, err = d.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = d.Get("c")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = d.Get("b")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDict_IntKeys(t *testing.T) {
	d := NewDict[int, string](8)
	d.Put(42, "compans")
	d.Put(2, "marengo")

	v, err := d.Get(42)
	require.NoError(t, err)
	assert.Equal(t, "compans", v)
	assert.False(t, d.Contains(7))
}

func TestDict_Clear(t *testing.T) {
	d := NewDict[string, int](16)
	d.Put("a", 1)
	d.Put("b", 2)
	d.Clear()

	assert.True(t, d.Empty())
	assert.False(t, d.Contains("a"))
	assert.Equal(t, 0, d.Len())
}

func TestDict_Resize(t *testing.T) {
	d := NewDict[string, int](1)
	for i := 0; i < 20; i++ {
		d.Put(fmt.Sprintf("key_%d", i), i)
	}
	require.Equal(t, 20, d.Len())

	d.Resize(32)

	assert.Equal(t, 20, d.Len())
	for i := 0; i < 20; i++ {
		v, err := d.Get(fmt.Sprintf("key_%d", i))
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestDict_KeysValues(t *testing.T) {
	d := NewDict[string, int](16)
	d.Put("a", 1)
	d.Put("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, d.Keys())
	assert.ElementsMatch(t, []int{1, 2}, d.Values())
}

func TestDict_All(t *testing.T) {
	d := NewDict[string, int](4)
	d.Put("a", 1)
	d.Put("b", 2)
	d.Put("c", 3)

	seen := map[string]int{}
	for k, v := range d.All() {
		seen[k] = v
	}

	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, seen)
}

func TestDict_DeterministicBucketForEqualKeys(t *testing.T) {
	d := NewDict[string, int](64)
	d.Put("station_12", 1)

	// Repeated lookups of an equal key must keep hitting the stored pair.
	for i := 0; i < 100; i++ {
		v, err := d.Get("station_12")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
}
