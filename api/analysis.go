// Package api
package api

import (
	"context"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/analytics"
	"github.com/govlens/governance-backend/types"
)

// Analysis handlers serve cached reports when the watcher has produced them
// recently, otherwise recompute from storage and refill the cache.

func (s *Server) Concentration(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	if report, err := s.cacheClient.ConcentrationReport(ctx, protocol); err == nil && report != nil {
		return OK.SetData(report).Build(c)
	}
	report, err := s.concentrationReport(ctx, protocol)
	if err != nil {
		s.logger.Warn("cannot build concentration report", zap.Error(err), zap.String("protocol", protocol))
		return InternalServer.Build(c)
	}
	return OK.SetData(report).Build(c)
}

func (s *Server) concentrationReport(ctx context.Context, protocol string) (*types.MetricsReport, error) {
	holders, err := s.dbClient.AllHolders(ctx, protocol)
	if err != nil {
		return nil, err
	}
	report := s.analyzer.Concentration(analytics.BalanceVector(holders), analytics.ConcentrationOpts{
		NakamotoThreshold: s.nakamotoThreshold,
	})
	if err := s.cacheClient.UpdateConcentrationReport(ctx, protocol, report); err != nil {
		s.logger.Debug("cannot cache concentration report", zap.Error(err))
	}
	return report, nil
}

func (s *Server) VotingBlocks(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	if report, err := s.cacheClient.BlockReport(ctx, protocol); err == nil && report != nil {
		return OK.SetData(report).Build(c)
	}
	report, err := s.blockReport(ctx, protocol)
	if err != nil {
		s.logger.Warn("cannot build block report", zap.Error(err), zap.String("protocol", protocol))
		return InternalServer.Build(c)
	}
	return OK.SetData(report).Build(c)
}

func (s *Server) blockReport(ctx context.Context, protocol string) (*types.BlockResult, error) {
	proposals, err := s.dbClient.AllProposals(ctx, protocol)
	if err != nil {
		return nil, err
	}
	report := s.analyzer.IdentifyBlocks(proposals, s.similarityThreshold)
	if err := s.cacheClient.UpdateBlockReport(ctx, protocol, report); err != nil {
		s.logger.Debug("cannot cache block report", zap.Error(err))
	}
	return report, nil
}

func (s *Server) BlockInfluence(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	blocks, err := s.loadBlocks(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	holders, err := s.dbClient.AllHolders(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	return OK.SetData(s.analyzer.BlockInfluence(blocks, holders)).Build(c)
}

func (s *Server) VotingPatterns(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	blocks, err := s.loadBlocks(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	proposals, err := s.dbClient.AllProposals(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	return OK.SetData(s.analyzer.BlockVotingPatterns(proposals, blocks.VoterBlockMapping)).Build(c)
}

func (s *Server) loadBlocks(ctx context.Context, protocol string) (*types.BlockResult, error) {
	if report, err := s.cacheClient.BlockReport(ctx, protocol); err == nil && report != nil {
		return report, nil
	}
	return s.blockReport(ctx, protocol)
}

func (s *Server) DelegationNetwork(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	if report, err := s.cacheClient.NetworkReport(ctx, protocol); err == nil && report != nil {
		return OK.SetData(report).Build(c)
	}
	report, err := s.networkReport(ctx, protocol)
	if err != nil {
		s.logger.Warn("cannot build network report", zap.Error(err), zap.String("protocol", protocol))
		return InternalServer.Build(c)
	}
	return OK.SetData(report).Build(c)
}

func (s *Server) networkReport(ctx context.Context, protocol string) (*types.NetworkResult, error) {
	delegations, err := s.dbClient.AllDelegations(ctx, protocol)
	if err != nil {
		return nil, err
	}
	holders, err := s.dbClient.AllHolders(ctx, protocol)
	if err != nil {
		return nil, err
	}
	report := s.analyzer.DelegationNetwork(delegations, holders)
	if err := s.cacheClient.UpdateNetworkReport(ctx, protocol, report); err != nil {
		s.logger.Debug("cannot cache network report", zap.Error(err))
	}
	return report, nil
}

func (s *Server) DelegationEffectiveness(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	delegations, err := s.dbClient.AllDelegations(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	proposals, err := s.dbClient.AllProposals(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	return OK.SetData(s.analyzer.DelegationEffectiveness(delegations, proposals)).Build(c)
}

func (s *Server) DelegationMetrics(c echo.Context) error {
	ctx := context.Background()
	protocol := c.Param("protocol")
	delegations, err := s.dbClient.AllDelegations(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	holders, err := s.dbClient.AllHolders(ctx, protocol)
	if err != nil {
		return InternalServer.Build(c)
	}
	return OK.SetData(s.analyzer.DelegationMetrics(delegations, holders)).Build(c)
}
