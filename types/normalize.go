// Package types
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Upstream providers disagree on field names for the same record. Everything
// entering the system passes through these normalizers exactly once; the rest
// of the codebase only ever sees the typed structs.

var (
	holderAddressKeys = []string{"address", "holderAddress", "holder_address", "wallet"}
	holderBalanceKeys = []string{"balance", "tokenBalance", "token_balance", "TokenHolderQuantity", "balanceFloat"}

	voteProposalKeys = []string{"proposalID", "proposal_id", "proposalId", "proposal"}
	voteVoterKeys    = []string{"voter", "voterAddress", "voter_address"}
	voteChoiceKeys   = []string{"choice", "vote", "support"}

	delegatorKeys = []string{"delegator", "delegatorAddress", "delegator_address", "from"}
	delegateKeys  = []string{"delegate", "delegateAddress", "delegate_address", "to"}
)

func NormalizeHolder(raw map[string]interface{}) (*Holder, bool) {
	addr, ok := pickString(raw, holderAddressKeys)
	if !ok || addr == "" {
		return nil, false
	}
	h := &Holder{Address: addr}
	if v, ok := pick(raw, holderBalanceKeys); ok {
		switch b := v.(type) {
		case string:
			h.Balance = b
		case float64:
			h.BalanceFloat = b
			h.Balance = strconv.FormatFloat(b, 'f', -1, 64)
		case int:
			h.BalanceFloat = float64(b)
			h.Balance = strconv.Itoa(b)
		case json.Number:
			h.Balance = b.String()
			if f, err := b.Float64(); err == nil {
				h.BalanceFloat = f
			}
		}
	}
	return h, true
}

func NormalizeVote(raw map[string]interface{}) (*Vote, bool) {
	voter, ok := pickString(raw, voteVoterKeys)
	if !ok || voter == "" {
		return nil, false
	}
	choiceRaw, ok := pickString(raw, voteChoiceKeys)
	if !ok {
		return nil, false
	}
	choice, ok := NormalizeChoice(choiceRaw)
	if !ok {
		return nil, false
	}
	v := &Vote{Voter: voter, Choice: choice}
	if pid, ok := pick(raw, voteProposalKeys); ok {
		switch p := pid.(type) {
		case string:
			v.ProposalID = p
		case float64:
			v.ProposalID = strconv.FormatFloat(p, 'f', -1, 64)
		case int:
			v.ProposalID = strconv.Itoa(p)
		case json.Number:
			v.ProposalID = p.String()
		}
	}
	if w, ok := pick(raw, []string{"weight"}); ok {
		if f, ok := w.(float64); ok {
			v.Weight = f
		}
	}
	return v, true
}

// NormalizeChoice folds upstream vote encodings into for/against/abstain.
func NormalizeChoice(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case VoteFor, "yes", "yay", "y", "1":
		return VoteFor, true
	case VoteAgainst, "no", "nay", "n", "0":
		return VoteAgainst, true
	case VoteAbstain, "pass", "2":
		return VoteAbstain, true
	}
	return "", false
}

func NormalizeDelegation(raw map[string]interface{}) (*Delegation, bool) {
	delegator, ok := pickString(raw, delegatorKeys)
	if !ok || delegator == "" {
		return nil, false
	}
	delegate, ok := pickString(raw, delegateKeys)
	if !ok || delegate == "" {
		return nil, false
	}
	d := &Delegation{Delegator: delegator, Delegate: delegate}
	if v, ok := pick(raw, []string{"amount"}); ok {
		switch a := v.(type) {
		case float64:
			amount := a
			d.Amount = &amount
		case json.Number:
			if f, err := a.Float64(); err == nil {
				d.Amount = &f
			}
		}
	}
	return d, true
}

func pick(raw map[string]interface{}, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func pickString(raw map[string]interface{}, keys []string) (string, bool) {
	v, ok := pick(raw, keys)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
