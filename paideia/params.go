// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package paideia

// Protocol constants. Values are in nanoerg unless noted.
const (
	MaxStakeTokens uint64 = 1_000_000_000_000 // stake tokens minted at bootstrap, held by the stake state
	MinStakeAmount uint64 = 1000              // in staked token base units

	// MinOutputValue is the smallest value any ledger output may carry.
	MinOutputValue uint64 = 100_000
	// MinBoxValue is the value of a record box and the smallest incentive
	// reserve left after a transition.
	MinBoxValue     uint64 = 1_000_000
	StakeBoxValue          = MinBoxValue
	EmissionValue          = MinBoxValue
	EmissionFeeValue       = MinBoxValue
	UserOutputValue uint64 = 10_000_000

	// ProxyCreationFee is paid by the user on top of the proxy value.
	ProxyCreationFee = MinBoxValue
	// StakeProxyBaseValue covers the new stake record and the key output.
	StakeProxyBaseValue = StakeBoxValue + UserOutputValue
	// ProxyBaseValue covers the user output of add-stake and unstake.
	ProxyBaseValue = UserOutputValue

	// MaxDustValue is the largest incentive record eligible for consolidation.
	MaxDustValue uint64 = 10_000_000

	// StakeKeyDecimals is the decimals of a minted stake key.
	StakeKeyDecimals = 0
)
