// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU[string, int](2)
	require.NoError(t, err)

	loads := 0
	load := func(k string) (int, error) {
		loads++
		if k == "bad" {
			return 0, errors.New("boom")
		}
		return len(k), nil
	}

	v, err := c.GetOrLoad("abc", load)
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = c.GetOrLoad("abc", load)
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad("bad", load)
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())

	hit, miss := c.Stats().Counts()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(2), miss)
}

func TestLRUEvicts(t *testing.T) {
	c, err := NewLRU[int, string](2)
	require.NoError(t, err)

	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")

	_, ok := c.Get(1)
	assert.False(t, ok)
	v, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	c.Remove(3)
	_, ok = c.Get(3)
	assert.False(t, ok)

	_, err = NewLRU[int, int](0)
	assert.Error(t, err)
}
