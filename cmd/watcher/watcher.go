// Package main
package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/govlens/governance-backend/analytics"
	"github.com/govlens/governance-backend/cache"
	"github.com/govlens/governance-backend/cfg"
	"github.com/govlens/governance-backend/db"
	"github.com/govlens/governance-backend/types"
)

type watcher struct {
	cfg cfg.AnalyticsConfig

	dbClient    db.Client
	cacheClient cache.Client
	analyzer    *analytics.Analyzer

	logger *zap.Logger
}

// run recomputes reports for every known protocol on each tick until the
// context is cancelled.
func (w *watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.WatcherInterval)
	defer ticker.Stop()

	w.refreshAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *watcher) refreshAll(ctx context.Context) {
	protocols := w.cfg.Protocols
	if len(protocols) == 0 {
		stored, err := w.dbClient.Protocols(ctx)
		if err != nil {
			w.logger.Warn("cannot list protocols", zap.Error(err))
			return
		}
		protocols = stored
	}
	// Protocols are independent: the analyzer keeps no state between calls
	// and the storage client hands out per-query collection handles, so each
	// one refreshes on its own goroutine.
	var wg sync.WaitGroup
	for _, protocol := range protocols {
		wg.Add(1)
		go func(protocol string) {
			defer wg.Done()
			if err := w.refresh(ctx, protocol); err != nil {
				w.logger.Warn("cannot refresh protocol reports", zap.Error(err), zap.String("protocol", protocol))
			}
		}(protocol)
	}
	wg.Wait()
}

func (w *watcher) refresh(ctx context.Context, protocol string) error {
	lgr := w.logger.With(zap.String("protocol", protocol))
	start := time.Now()

	holders, err := w.dbClient.AllHolders(ctx, protocol)
	if err != nil {
		return err
	}
	proposals, err := w.dbClient.AllProposals(ctx, protocol)
	if err != nil {
		return err
	}
	delegations, err := w.dbClient.AllDelegations(ctx, protocol)
	if err != nil {
		return err
	}

	concentration := w.analyzer.Concentration(analytics.BalanceVector(holders), analytics.ConcentrationOpts{
		NakamotoThreshold: w.cfg.NakamotoThreshold,
	})
	if err := w.dbClient.UpsertConcentrationReport(ctx, protocol, concentration); err != nil {
		lgr.Warn("cannot persist concentration report", zap.Error(err))
	}
	if err := w.cacheClient.UpdateConcentrationReport(ctx, protocol, concentration); err != nil {
		lgr.Debug("cannot cache concentration report", zap.Error(err))
	}

	blocks := w.analyzer.IdentifyBlocks(proposals, w.cfg.SimilarityThreshold)
	if err := w.dbClient.UpsertBlockReport(ctx, protocol, blocks); err != nil {
		lgr.Warn("cannot persist block report", zap.Error(err))
	}
	if err := w.cacheClient.UpdateBlockReport(ctx, protocol, blocks); err != nil {
		lgr.Debug("cannot cache block report", zap.Error(err))
	}

	network := w.analyzer.DelegationNetwork(delegations, holders)
	if err := w.dbClient.UpsertNetworkReport(ctx, protocol, network); err != nil {
		lgr.Warn("cannot persist network report", zap.Error(err))
	}
	if err := w.cacheClient.UpdateNetworkReport(ctx, protocol, network); err != nil {
		lgr.Debug("cannot cache network report", zap.Error(err))
	}

	var voteCount uint64
	for _, p := range proposals {
		voteCount += uint64(len(p.Votes))
	}
	stats := &types.ProtocolStats{
		Protocol:        protocol,
		HolderCount:     uint64(len(holders)),
		ProposalCount:   uint64(len(proposals)),
		VoteCount:       voteCount,
		DelegationCount: uint64(len(delegations)),
	}
	if err := w.dbClient.UpdateStats(ctx, stats); err != nil {
		lgr.Warn("cannot update stats", zap.Error(err))
	}
	_ = w.cacheClient.UpdateTotalHolders(ctx, protocol, stats.HolderCount)

	lgr.Info("Refreshed reports",
		zap.Uint64("holders", stats.HolderCount),
		zap.Uint64("proposals", stats.ProposalCount),
		zap.Uint64("delegations", stats.DelegationCount),
		zap.Duration("took", time.Since(start)))
	return nil
}
