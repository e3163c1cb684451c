// Package api
package api

import (
	"context"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

// ImportVotes appends normalized votes to a proposal, creating it on first
// sight. Vote choices are canonicalized (yes/1 -> for, no/0 -> against,
// pass/2 -> abstain); records with no voter or unknown choice are dropped.
func (s *Server) ImportVotes(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "ImportVotes"))
	if c.Request().Header.Get("Authorization") != s.authorizationSecret {
		return Unauthorized.Build(c)
	}
	protocol := c.Param("protocol")
	proposalID := c.Param("id")
	var raw []map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		lgr.Error("cannot bind votes payload", zap.Error(err))
		return Invalid.Build(c)
	}
	var votes []*types.Vote
	for _, record := range raw {
		vote, ok := types.NormalizeVote(record)
		if !ok {
			continue
		}
		vote.Protocol = protocol
		vote.ProposalID = proposalID
		votes = append(votes, vote)
	}
	ctx := context.Background()
	if err := s.dbClient.AddVotes(ctx, protocol, proposalID, votes); err != nil {
		lgr.Error("cannot add votes", zap.Error(err), zap.String("proposal", proposalID))
		return InternalServer.Build(c)
	}
	type ingestStat struct {
		Received int `json:"received"`
		Accepted int `json:"accepted"`
	}
	return OK.SetData(&ingestStat{Received: len(raw), Accepted: len(votes)}).Build(c)
}

func (s *Server) Proposals(c echo.Context) error {
	ctx := context.Background()
	pagination, page, limit := getPagingOption(c)
	filter := &types.ProposalFilter{
		Protocol:   c.Param("protocol"),
		Pagination: pagination,
	}
	proposals, total, err := s.dbClient.GetListProposals(ctx, filter)
	if err != nil {
		s.logger.Warn("cannot get proposals list", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(PagingResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  proposals,
	}).Build(c)
}

func (s *Server) ProposalDetails(c echo.Context) error {
	ctx := context.Background()
	proposal, err := s.dbClient.ProposalInfo(ctx, c.Param("protocol"), c.Param("id"))
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(proposal).Build(c)
}
