// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/api/utils"
	"github.com/paideiadao/paideia-contracts/journal"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

// maxJournalLimit caps a journal page.
const maxJournalLimit = 1000

type Staking struct {
	view    *staking.View
	journal *journal.Journal
}

// New creates the staking endpoints. journal may be nil, in which case the
// journal route is not mounted.
func New(view *staking.View, j *journal.Journal) *Staking {
	return &Staking{
		view,
		j,
	}
}

func (s *Staking) handleGetState(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	stateBox, state, err := s.view.State(ctx)
	if err != nil {
		return err
	}
	poolBox, pool, err := s.view.Pool(ctx)
	if err != nil {
		return err
	}
	emissionBox, emission, err := s.view.Emission(ctx)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &State{
		BoxID:            stateBox.ID(),
		Checkpoint:       state.Checkpoint,
		AmountStaked:     state.AmountStaked,
		Stakers:          state.Stakers,
		CheckpointTime:   state.CheckpointTime,
		CycleDuration:    state.CycleDuration,
		NextEmissionTime: state.NextEmissionTime(),
		Pool: Pool{
			BoxID:          poolBox.ID(),
			Remaining:      pool.Remaining,
			EmissionAmount: pool.EmissionAmount,
		},
		Emission: Emission{
			BoxID:             emissionBox.ID(),
			Checkpoint:        emission.Checkpoint,
			AmountStaked:      emission.AmountStaked,
			EmissionRemaining: emission.EmissionRemaining,
			Stakers:           emission.Stakers,
			EmissionAmount:    emission.EmissionAmount,
		},
	})
}

func (s *Staking) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	key, err := paideia.ParseBytes32(mux.Vars(req)["key"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "key"))
	}
	b, position, err := s.view.Stake(req.Context(), key)
	if err != nil {
		if ledger.IsNotFound(err) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertStake(b.ID(), position))
}

func (s *Staking) handleGetContracts(w http.ResponseWriter, _ *http.Request) error {
	cfg := s.view.Config()
	contracts := make([]*Contract, 0, len(cfg.Contracts()))
	for _, c := range cfg.Contracts() {
		contracts = append(contracts, &Contract{
			Kind: c.Kind().String(),
			Hash: c.Hash(),
			Tree: c.Tree(),
		})
	}
	return utils.WriteJSON(w, contracts)
}

// handleGetAssets answers what a user must send to create a proxy.
func (s *Staking) handleGetAssets(w http.ResponseWriter, req *http.Request) error {
	amount, err := utils.QueryUint64(req, "amount", 0)
	if err != nil {
		return err
	}
	cfg := s.view.Config()
	kind := req.URL.Query().Get("kind")
	if kind == "" || kind == "stake" {
		assets, err := staking.StakeProxyAssets(cfg, amount)
		if err != nil {
			return stakingError(err)
		}
		return utils.WriteJSON(w, assets)
	}

	key, err := paideia.ParseBytes32(req.URL.Query().Get("key"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "key"))
	}
	stakeBox, _, err := s.view.Stake(req.Context(), key)
	if err != nil {
		if ledger.IsNotFound(err) {
			return utils.NotFound(err)
		}
		return err
	}
	var assets staking.AssetsRequired
	switch kind {
	case "add":
		assets, err = staking.AddStakeProxyAssets(cfg, stakeBox, amount)
	case "unstake":
		assets, err = staking.UnstakeProxyAssets(cfg, stakeBox, amount)
	default:
		return utils.BadRequest(errors.Errorf("kind: unknown proxy kind %q", kind))
	}
	if err != nil {
		return stakingError(err)
	}
	return utils.WriteJSON(w, assets)
}

func (s *Staking) handleGetJournal(w http.ResponseWriter, req *http.Request) error {
	filter := &journal.Filter{Order: journal.ASC}
	query := req.URL.Query()
	if name := query.Get("kind"); name != "" {
		kind, ok := staking.ParseAction(name)
		if !ok {
			return utils.BadRequest(errors.Errorf("kind: unknown action %q", name))
		}
		filter.Kind = &kind
	}
	if query.Has("from") || query.Has("to") {
		from, err := utils.QueryInt64(req, "from", 0)
		if err != nil {
			return err
		}
		to, err := utils.QueryInt64(req, "to", 1<<62)
		if err != nil {
			return err
		}
		if from > to {
			return utils.BadRequest(errors.New("from: greater than to"))
		}
		filter.Range = &journal.Range{From: from, To: to}
	}
	switch order := journal.Order(query.Get("order")); order {
	case "", journal.ASC, journal.DESC:
		if order != "" {
			filter.Order = order
		}
	default:
		return utils.BadRequest(errors.Errorf("order: %q", order))
	}

	offset, err := utils.QueryUint64(req, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := utils.QueryUint64(req, "limit", maxJournalLimit)
	if err != nil {
		return err
	}
	if limit > maxJournalLimit {
		return utils.BadRequest(errors.Errorf("limit: exceeds %d", maxJournalLimit))
	}
	filter.Options = &journal.Options{Offset: offset, Limit: limit}

	entries, err := s.journal.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*journal.Entry{}
	}
	return utils.WriteJSON(w, entries)
}

// stakingError maps staking rule violations to 400.
func stakingError(err error) error {
	if staking.IsInvalidInputBox(err) || staking.IsInvalidTransactionConditions(err) {
		return utils.BadRequest(err)
	}
	return err
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/state").
		Methods(http.MethodGet).
		Name("staking_get_state").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetState))
	sub.Path("/stakes/{key}").
		Methods(http.MethodGet).
		Name("staking_get_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/contracts").
		Methods(http.MethodGet).
		Name("staking_get_contracts").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetContracts))
	sub.Path("/proxies/assets").
		Methods(http.MethodGet).
		Name("staking_get_proxy_assets").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAssets))
	if s.journal != nil {
		sub.Path("/journal").
			Methods(http.MethodGet).
			Name("staking_get_journal").
			HandlerFunc(utils.WrapHandlerFunc(s.handleGetJournal))
	}
}
