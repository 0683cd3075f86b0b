// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Mainnet returns the Paideia staking deployment on mainnet.
func Mainnet() *Config {
	return NewBuilder().
		Tokens(
			paideia.MustParseBytes32("b682ad9e8c56c5a0ba7fe2d3d9b2fbd40af989e8870628f4a03ae1022d36f091"),
			paideia.MustParseBytes32("93cda90b4fe24f075d7961fa0d1d662fdc7e1349d313059b9618eecb16c5eade"),
			paideia.MustParseBytes32("12bbef36eaa5e61b64d519196a1e8ebea360f18aba9b02d2a21b16f26208960f"),
			paideia.MustParseBytes32("245957934c20285ada547aa8f2c8e6f7637be86a1985b3e4c36e4e1ad8ce97ab"),
			paideia.MustParseBytes32("1fd6e032e8476c4aa54c18c1a308dce83940e8f4a28f576440513ed7326ad489"),
			paideia.MustParseBytes32("b311425409ff2e8f5901d230788c6628b5846be0b9c66621e4880b086dd5eaef"),
		).
		StakedToken("Paideia", 4).
		MustBuild()
}

// Testnet returns the Paideia test deployment.
func Testnet() *Config {
	return NewBuilder().
		Tokens(
			paideia.MustParseBytes32("aad0b57e456c696841155d414184442ff269f233a3ac87f52050003c1bdce2cd"),
			paideia.MustParseBytes32("cefbfdad99eb0a3bf836d561d3c844df4d3a9d1e7a7c8479a9262165ce787b81"),
			paideia.MustParseBytes32("2ac6583dcbc11e13758ca846388dadb67d5f09fee27243c0f42fd280c625b347"),
			paideia.MustParseBytes32("c1eafc184b24ac1fb59d238f659cd6bdcc258604fa29c078a6667808dad94889"),
			paideia.MustParseBytes32("001475b06ed4d2a2fe1e244c951b4c70d924b933b9ee05227f2f2da7d6f46fd3"),
			paideia.MustParseBytes32("c50a7127b95f9ca0dd2f8da8ed6c1c93d5a791c899103f88baa8127c9ab8783b"),
		).
		StakedToken("PaideiaTest", 4).
		MustBuild()
}

// ByName returns a preset by network name.
func ByName(name string) (*Config, bool) {
	switch name {
	case "main", "mainnet":
		return Mainnet(), true
	case "test", "testnet":
		return Testnet(), true
	}
	return nil, false
}
