// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

const transitionTableSchema = `
create table if not exists transition (
	seq integer primary key autoincrement,
	txID blob(32) not null unique,
	kind text not null,
	checkpoint integer not null,
	amountStaked integer not null,
	stakers integer not null,
	poolRemaining integer not null,
	fee integer not null,
	time integer not null
);

create index if not exists transitionKindIndex on transition(kind);
create index if not exists transitionCheckpointIndex on transition(checkpoint);
`
