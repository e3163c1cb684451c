// Package api
package api

import (
	"context"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

const serverVersion = "1.0.0"

func (s *Server) Ping(c echo.Context) error {
	type pingStat struct {
		Version string `json:"version"`
	}
	stats := &pingStat{Version: serverVersion}
	return OK.SetData(stats).Build(c)
}

func (s *Server) ServerStatus(c echo.Context) error {
	lgr := s.logger
	ctx := context.Background()
	status, err := s.cacheClient.ServerStatus(ctx)
	if err != nil {
		lgr.Error("cannot get cache, return default instead")
		status = &types.ServerStatus{
			Status:        "ONLINE",
			AppVersion:    serverVersion,
			ServerVersion: serverVersion,
		}
	}
	return OK.SetData(status).Build(c)
}

func (s *Server) UpdateServerStatus(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "UpdateServerStatus"))
	if c.Request().Header.Get("Authorization") != s.authorizationSecret {
		lgr.Warn("Cannot authorization request")
		return Unauthorized.Build(c)
	}
	var serverStatus *types.ServerStatus
	if err := c.Bind(&serverStatus); err != nil {
		lgr.Error("cannot bind server status", zap.Error(err))
		return Invalid.Build(c)
	}
	ctx := context.Background()
	if err := s.cacheClient.UpdateServerStatus(ctx, serverStatus); err != nil {
		lgr.Error("cannot update server status", zap.Error(err))
		return Invalid.Build(c)
	}

	return OK.SetData(nil).Build(c)
}

func (s *Server) Protocols(c echo.Context) error {
	ctx := context.Background()
	protocols, err := s.dbClient.Protocols(ctx)
	if err != nil {
		s.logger.Warn("cannot list protocols", zap.Error(err))
		return InternalServer.Build(c)
	}
	return OK.SetData(protocols).Build(c)
}

func (s *Server) Stats(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	stats, err := s.dbClient.Stats(ctx, protocol)
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(stats).Build(c)
}
