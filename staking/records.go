// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// State is the stake state singleton: the aggregate counters of the pool.
type State struct {
	AmountStaked   uint64
	Checkpoint     int64
	Stakers        uint64
	CheckpointTime uint64 // unix ms
	CycleDuration  uint64 // ms
	Value          uint64
}

// Pool is the stake pool singleton holding the undistributed reserve.
type Pool struct {
	EmissionAmount uint64
	Remaining      uint64
	Value          uint64
}

// Emission holds the reward of the active checkpoint until compounded.
type Emission struct {
	EmissionRemaining uint64
	AmountStaked      uint64
	Checkpoint        int64
	Stakers           uint64
	EmissionAmount    uint64
	Value             uint64
}

// Position is an individual stake, identified by its stake key.
type Position struct {
	Checkpoint   int64
	StakeTime    uint64
	AmountStaked uint64
	StakeKey     paideia.Bytes32
	Value        uint64
}

// Incentive is a value-only reserve paying operators and miner fees.
type Incentive struct {
	Value uint64
}

func expectContract(c *contract.Contract, b *box.Box) error {
	if b == nil {
		return invalidInput("%v: missing box", c.Kind())
	}
	if !c.Guards(b.Tree()) {
		return invalidInput("%v: box %v does not match contract", c.Kind(), b.ID().AbbrevString())
	}
	return nil
}

func expectIdentity(kind contract.Kind, b *box.Box, id paideia.Bytes32) error {
	assets := b.Assets()
	if len(assets) == 0 || assets[0].ID != id || assets[0].Amount != 1 {
		return invalidInput("%v: identity token missing", kind)
	}
	return nil
}

// expectAssets checks the box holds exactly the listed non-zero assets, in order.
func expectAssets(kind contract.Kind, b *box.Box, want ...box.Asset) error {
	var expected box.Assets
	for _, a := range want {
		if a.Amount > 0 {
			expected = append(expected, a)
		}
	}
	got := b.Assets()
	if len(got) != len(expected) {
		return invalidInput("%v: unexpected token count %d", kind, len(got))
	}
	for i := range got {
		if got[i] != expected[i] {
			return invalidInput("%v: unexpected token #%d", kind, i)
		}
	}
	return nil
}

func readLongs(kind contract.Kind, b *box.Box, n int, size int) ([]int64, error) {
	r, ok := b.Register(n)
	if !ok || r.Type() != box.LongArray {
		return nil, invalidInput("%v: R%d is not a long array", kind, n)
	}
	longs := r.Longs()
	if len(longs) != size {
		return nil, invalidInput("%v: R%d has %d longs, want %d", kind, n, len(longs), size)
	}
	return longs, nil
}

func readBytes(kind contract.Kind, b *box.Box, n int) ([]byte, error) {
	r, ok := b.Register(n)
	if !ok || r.Type() != box.ByteArray {
		return nil, invalidInput("%v: R%d is not a byte array", kind, n)
	}
	return r.Bytes(), nil
}

func readBytes32(kind contract.Kind, b *box.Box, n int) (paideia.Bytes32, error) {
	data, err := readBytes(kind, b, n)
	if err != nil {
		return paideia.Bytes32{}, err
	}
	if len(data) != len(paideia.Bytes32{}) {
		return paideia.Bytes32{}, invalidInput("%v: R%d is not an id", kind, n)
	}
	return paideia.BytesToBytes32(data), nil
}

func unsigned(kind contract.Kind, field string, v int64) (uint64, error) {
	if v < 0 {
		return 0, invalidInput("%v: negative %s", kind, field)
	}
	return uint64(v), nil
}

// ReadState validates b as the stake state record.
func ReadState(cfg *config.Config, b *box.Box) (State, error) {
	const kind = contract.StakeState
	if err := expectContract(cfg.StakeStateContract(), b); err != nil {
		return State{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 5)
	if err != nil {
		return State{}, err
	}
	var s State
	if s.AmountStaked, err = unsigned(kind, "amountStaked", longs[0]); err != nil {
		return State{}, err
	}
	s.Checkpoint = longs[1]
	if s.Stakers, err = unsigned(kind, "stakers", longs[2]); err != nil {
		return State{}, err
	}
	if s.CheckpointTime, err = unsigned(kind, "checkpointTime", longs[3]); err != nil {
		return State{}, err
	}
	if s.CycleDuration, err = unsigned(kind, "cycleDuration", longs[4]); err != nil {
		return State{}, err
	}
	if s.Stakers > paideia.MaxStakeTokens {
		return State{}, invalidInput("%v: stakers exceed stake tokens", kind)
	}
	if err := expectAssets(kind, b,
		box.Asset{ID: cfg.StakeStateNFT(), Amount: 1},
		box.Asset{ID: cfg.StakeTokenID(), Amount: paideia.MaxStakeTokens - s.Stakers},
	); err != nil {
		return State{}, err
	}
	s.Value = b.Value()
	return s, nil
}

// Box builds the stake state candidate.
func (s State) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(s.Value).
		Tree(cfg.StakeStateContract().Tree()).
		Asset(cfg.StakeStateNFT(), 1).
		Asset(cfg.StakeTokenID(), paideia.MaxStakeTokens-s.Stakers).
		Register(box.Longs(toLong(s.AmountStaked), s.Checkpoint, toLong(s.Stakers), toLong(s.CheckpointTime), toLong(s.CycleDuration))).
		Build()
}

// NextEmissionTime returns the unix ms time the next Emit becomes possible.
func (s State) NextEmissionTime() uint64 {
	return s.CheckpointTime + s.CycleDuration
}

// ReadPool validates b as the stake pool record.
func ReadPool(cfg *config.Config, b *box.Box) (Pool, error) {
	const kind = contract.StakePool
	if err := expectContract(cfg.StakePoolContract(), b); err != nil {
		return Pool{}, err
	}
	if err := expectIdentity(kind, b, cfg.StakePoolNFT()); err != nil {
		return Pool{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 1)
	if err != nil {
		return Pool{}, err
	}
	key, err := readBytes32(kind, b, 5)
	if err != nil {
		return Pool{}, err
	}
	if key != cfg.StakePoolKey() {
		return Pool{}, invalidInput("%v: wrong stake pool key", kind)
	}
	var p Pool
	if p.EmissionAmount, err = unsigned(kind, "emissionAmount", longs[0]); err != nil {
		return Pool{}, err
	}
	p.Remaining = b.Asset(cfg.StakedTokenID())
	if err := expectAssets(kind, b,
		box.Asset{ID: cfg.StakePoolNFT(), Amount: 1},
		box.Asset{ID: cfg.StakedTokenID(), Amount: p.Remaining},
	); err != nil {
		return Pool{}, err
	}
	p.Value = b.Value()
	return p, nil
}

// Box builds the stake pool candidate.
func (p Pool) Box(cfg *config.Config) *box.Box {
	key := cfg.StakePoolKey()
	return box.NewBuilder().
		Value(p.Value).
		Tree(cfg.StakePoolContract().Tree()).
		Asset(cfg.StakePoolNFT(), 1).
		Asset(cfg.StakedTokenID(), p.Remaining).
		Register(box.Longs(toLong(p.EmissionAmount))).
		Register(box.Bytes(key[:])).
		Build()
}

// ReadEmission validates b as the emission record.
func ReadEmission(cfg *config.Config, b *box.Box) (Emission, error) {
	const kind = contract.Emission
	if err := expectContract(cfg.EmissionContract(), b); err != nil {
		return Emission{}, err
	}
	if err := expectIdentity(kind, b, cfg.EmissionNFT()); err != nil {
		return Emission{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 4)
	if err != nil {
		return Emission{}, err
	}
	var e Emission
	if e.AmountStaked, err = unsigned(kind, "amountStaked", longs[0]); err != nil {
		return Emission{}, err
	}
	e.Checkpoint = longs[1]
	if e.Stakers, err = unsigned(kind, "stakers", longs[2]); err != nil {
		return Emission{}, err
	}
	if e.EmissionAmount, err = unsigned(kind, "emissionAmount", longs[3]); err != nil {
		return Emission{}, err
	}
	e.EmissionRemaining = b.Asset(cfg.StakedTokenID())
	if err := expectAssets(kind, b,
		box.Asset{ID: cfg.EmissionNFT(), Amount: 1},
		box.Asset{ID: cfg.StakedTokenID(), Amount: e.EmissionRemaining},
	); err != nil {
		return Emission{}, err
	}
	e.Value = b.Value()
	return e, nil
}

// Box builds the emission candidate. The staked token entry is omitted
// when nothing remains.
func (e Emission) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(e.Value).
		Tree(cfg.EmissionContract().Tree()).
		Asset(cfg.EmissionNFT(), 1).
		Asset(cfg.StakedTokenID(), e.EmissionRemaining).
		Register(box.Longs(toLong(e.AmountStaked), e.Checkpoint, toLong(e.Stakers), toLong(e.EmissionAmount))).
		Build()
}

// ReadPosition validates b as a stake record.
func ReadPosition(cfg *config.Config, b *box.Box) (Position, error) {
	const kind = contract.Stake
	if err := expectContract(cfg.StakeContract(), b); err != nil {
		return Position{}, err
	}
	if err := expectIdentity(kind, b, cfg.StakeTokenID()); err != nil {
		return Position{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 2)
	if err != nil {
		return Position{}, err
	}
	var p Position
	p.Checkpoint = longs[0]
	if p.StakeTime, err = unsigned(kind, "stakeTime", longs[1]); err != nil {
		return Position{}, err
	}
	if p.StakeKey, err = readBytes32(kind, b, 5); err != nil {
		return Position{}, err
	}
	p.AmountStaked = b.Asset(cfg.StakedTokenID())
	if p.AmountStaked < paideia.MinStakeAmount {
		return Position{}, invalidInput("%v: staked amount %d below minimum", kind, p.AmountStaked)
	}
	if err := expectAssets(kind, b,
		box.Asset{ID: cfg.StakeTokenID(), Amount: 1},
		box.Asset{ID: cfg.StakedTokenID(), Amount: p.AmountStaked},
	); err != nil {
		return Position{}, err
	}
	p.Value = b.Value()
	return p, nil
}

// Box builds the stake record candidate.
func (p Position) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(p.Value).
		Tree(cfg.StakeContract().Tree()).
		Asset(cfg.StakeTokenID(), 1).
		Asset(cfg.StakedTokenID(), p.AmountStaked).
		Register(box.Longs(p.Checkpoint, toLong(p.StakeTime))).
		Register(box.Bytes(p.StakeKey[:])).
		Build()
}

// ReadIncentive validates b as an incentive record.
func ReadIncentive(cfg *config.Config, b *box.Box) (Incentive, error) {
	if err := expectContract(cfg.IncentiveContract(), b); err != nil {
		return Incentive{}, err
	}
	if len(b.Assets()) != 0 {
		return Incentive{}, invalidInput("%v: unexpected tokens", contract.Incentive)
	}
	return Incentive{Value: b.Value()}, nil
}

// Box builds the incentive candidate.
func (i Incentive) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(i.Value).
		Tree(cfg.IncentiveContract().Tree()).
		Build()
}
