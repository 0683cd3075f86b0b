// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/paideia"
)

// Kind identifies a contract template.
type Kind uint8

const (
	Stake Kind = iota + 1
	StakeState
	StakePool
	Emission
	Incentive
	StakeProxy
	AddStakeProxy
	UnstakeProxy
)

var kindNames = map[Kind]string{
	Stake:         "stake",
	StakeState:    "stakeState",
	StakePool:     "stakePool",
	Emission:      "emission",
	Incentive:     "incentive",
	StakeProxy:    "stakeProxy",
	AddStakeProxy: "addStakeProxy",
	UnstakeProxy:  "unstakeProxy",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// treeHeader prefixes every contract tree so they never collide with plain
// owner trees.
const treeHeader = 0x19

// Binding is a named constant compiled into a contract.
type Binding struct {
	Name  string
	Value []byte
}

// BindBytes32 binds an id or hash.
func BindBytes32(name string, v paideia.Bytes32) Binding {
	return Binding{name, v.Bytes()}
}

// BindTree binds a tree.
func BindTree(name string, v paideia.Tree) Binding {
	return Binding{name, append([]byte(nil), v...)}
}

// BindUint binds an amount.
func BindUint(name string, v uint64) Binding {
	enc, _ := rlp.EncodeToBytes(v)
	return Binding{name, enc}
}

// Contract is a compiled contract: a template with its constants bound.
// Boxes guarded by the contract carry its tree.
type Contract struct {
	kind     Kind
	bindings []Binding
	tree     paideia.Tree
	hash     paideia.Bytes32
}

// New compiles a contract of the given kind.
func New(kind Kind, bindings ...Binding) (*Contract, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, errors.Errorf("unknown contract kind %d", kind)
	}
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if _, ok := seen[b.Name]; ok {
			return nil, errors.Errorf("%v: duplicated binding %q", kind, b.Name)
		}
		seen[b.Name] = struct{}{}
	}

	body, err := rlp.EncodeToBytes(bindings)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: encode bindings", kind)
	}
	tree := make(paideia.Tree, 0, 2+len(body))
	tree = append(tree, treeHeader, byte(kind))
	tree = append(tree, body...)

	return &Contract{
		kind:     kind,
		bindings: append([]Binding(nil), bindings...),
		tree:     tree,
		hash:     tree.Hash(),
	}, nil
}

func (c *Contract) Kind() Kind { return c.kind }

// Tree returns a copy of the contract tree.
func (c *Contract) Tree() paideia.Tree {
	return append(paideia.Tree(nil), c.tree...)
}

// Hash returns blake2b-256 of the tree.
func (c *Contract) Hash() paideia.Bytes32 { return c.hash }

// Binding returns the value bound to name.
func (c *Contract) Binding(name string) ([]byte, bool) {
	for _, b := range c.bindings {
		if b.Name == name {
			return append([]byte(nil), b.Value...), true
		}
	}
	return nil, false
}

// Guards reports whether the tree is this contract's tree.
func (c *Contract) Guards(tree paideia.Tree) bool {
	return bytes.Equal(c.tree, tree)
}

func (c *Contract) String() string {
	return fmt.Sprintf("%v(%v)", c.kind, c.hash.AbbrevString())
}

// IsContractTree reports whether the tree was produced by New.
func IsContractTree(tree paideia.Tree) bool {
	return len(tree) >= 2 && tree[0] == treeHeader
}
