// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucketGetter(t *testing.T) {
	m := mem{"box/1": "a", "box/2": "b", "tree/1": "c"}

	tests := []struct {
		b    Bucket
		key  string
		want string
		has  bool
	}{
		{Bucket(""), "box/1", "a", true},
		{Bucket("box/"), "1", "a", true},
		{Bucket("box/"), "2", "b", true},
		{Bucket("tree/"), "1", "c", true},
		{Bucket("tree/"), "2", "", false},
		{Bucket("box/1"), "", "a", true},
	}
	for _, tt := range tests {
		g := tt.b.NewGetter(m)
		got, err := g.Get([]byte(tt.key))
		if tt.has {
			assert.NoError(t, err)
		} else {
			assert.True(t, g.IsNotFound(err))
		}
		assert.Equal(t, tt.want, string(got))

		has, err := g.Has([]byte(tt.key))
		assert.NoError(t, err)
		assert.Equal(t, tt.has, has)
	}
}

func TestBucketPutter(t *testing.T) {
	m := mem{}
	p := Bucket("box/").NewPutter(m)

	assert.NoError(t, p.Put([]byte("1"), []byte("a")))
	assert.Equal(t, mem{"box/1": "a"}, m)

	assert.NoError(t, p.Delete([]byte("1")))
	assert.Empty(t, m)
}

func TestBucketKeyAndPrefix(t *testing.T) {
	assert.Equal(t, []byte("box/1"), Bucket("box/").Key([]byte("1")))

	r := Prefix([]byte("ab"))
	assert.Equal(t, []byte("ab"), r.Start)
	assert.Equal(t, []byte("ac"), r.Limit)
}
