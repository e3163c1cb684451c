// Package api
package api

import (
	"context"
	"time"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

// UpdateDelegations ingests raw delegation records. One document is kept per
// delegator, so a re-delegation replaces the previous one.
func (s *Server) UpdateDelegations(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "UpdateDelegations"))
	if c.Request().Header.Get("Authorization") != s.authorizationSecret {
		return Unauthorized.Build(c)
	}
	protocol := c.Param("protocol")
	var raw []map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		lgr.Error("cannot bind delegations payload", zap.Error(err))
		return Invalid.Build(c)
	}
	now := time.Now().Unix()
	var delegations []*types.Delegation
	for _, record := range raw {
		delegation, ok := types.NormalizeDelegation(record)
		if !ok {
			continue
		}
		delegation.Protocol = protocol
		delegation.UpdatedAt = now
		delegations = append(delegations, delegation)
	}
	ctx := context.Background()
	if err := s.dbClient.UpsertDelegations(ctx, delegations); err != nil {
		lgr.Error("cannot upsert delegations", zap.Error(err))
		return InternalServer.Build(c)
	}
	type ingestStat struct {
		Received int `json:"received"`
		Accepted int `json:"accepted"`
	}
	return OK.SetData(&ingestStat{Received: len(raw), Accepted: len(delegations)}).Build(c)
}

func (s *Server) Delegations(c echo.Context) error {
	ctx := context.Background()
	pagination, page, limit := getPagingOption(c)
	delegations, total, err := s.dbClient.Delegations(ctx, c.Param("protocol"), pagination)
	if err != nil {
		s.logger.Warn("cannot get delegations list", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(PagingResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  delegations,
	}).Build(c)
}
