// Package api
package api

import (
	"context"
	"time"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

// UpdateHolders ingests raw holder records. Field names are normalized, so
// exports from different sources (address/holder/wallet, balance variants)
// land in the same shape. Records without a usable address are dropped.
func (s *Server) UpdateHolders(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "UpdateHolders"))
	if c.Request().Header.Get("Authorization") != s.authorizationSecret {
		return Unauthorized.Build(c)
	}
	protocol := c.Param("protocol")
	var raw []map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		lgr.Error("cannot bind holders payload", zap.Error(err))
		return Invalid.Build(c)
	}
	now := time.Now().Unix()
	var holders []*types.Holder
	for _, record := range raw {
		holder, ok := types.NormalizeHolder(record)
		if !ok {
			continue
		}
		holder.Protocol = protocol
		holder.UpdatedAt = now
		holders = append(holders, holder)
	}
	ctx := context.Background()
	if err := s.dbClient.UpdateHolders(ctx, holders); err != nil {
		lgr.Error("cannot upsert holders", zap.Error(err))
		return InternalServer.Build(c)
	}
	_ = s.cacheClient.UpdateTotalHolders(ctx, protocol, uint64(len(holders)))
	type ingestStat struct {
		Received int `json:"received"`
		Accepted int `json:"accepted"`
	}
	return OK.SetData(&ingestStat{Received: len(raw), Accepted: len(holders)}).Build(c)
}

func (s *Server) Holders(c echo.Context) error {
	ctx := context.Background()
	pagination, page, limit := getPagingOption(c)
	filter := &types.HolderFilter{
		Protocol:   c.Param("protocol"),
		Pagination: pagination,
	}
	holders, total, err := s.dbClient.GetListHolders(ctx, filter)
	if err != nil {
		s.logger.Warn("cannot get holders list", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(PagingResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  holders,
	}).Build(c)
}
