// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/paideia"
)

func TestNew(t *testing.T) {
	nft := paideia.Blake2b([]byte("state"))

	a, err := New(StakeState, BindBytes32("stakeStateNFT", nft), BindUint("fee", 1_000_000))
	require.NoError(t, err)
	b, err := New(StakeState, BindBytes32("stakeStateNFT", nft), BindUint("fee", 1_000_000))
	require.NoError(t, err)
	c, err := New(StakeState, BindBytes32("stakeStateNFT", nft), BindUint("fee", 2_000_000))
	require.NoError(t, err)
	d, err := New(Emission, BindBytes32("stakeStateNFT", nft), BindUint("fee", 1_000_000))
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.NotEqual(t, a.Hash(), d.Hash())
	assert.Equal(t, a.Tree().Hash(), a.Hash())
	assert.True(t, a.Guards(b.Tree()))
	assert.False(t, a.Guards(c.Tree()))
	assert.True(t, IsContractTree(a.Tree()))
	assert.False(t, IsContractTree(paideia.Tree{0x00, 0x08}))
	assert.Equal(t, StakeState, a.Kind())
	assert.Contains(t, a.String(), "stakeState(")

	v, ok := a.Binding("stakeStateNFT")
	require.True(t, ok)
	assert.Equal(t, nft.Bytes(), v)
	_, ok = a.Binding("missing")
	assert.False(t, ok)
}

func TestNewErrors(t *testing.T) {
	_, err := New(Kind(99))
	assert.ErrorContains(t, err, "unknown contract kind")

	_, err = New(Stake, BindUint("x", 1), BindUint("x", 2))
	assert.ErrorContains(t, err, "duplicated binding")

	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.Equal(t, "unstakeProxy", UnstakeProxy.String())
}
