// Package api
package api

import (
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/analytics"
	"github.com/govlens/governance-backend/cache"
	"github.com/govlens/governance-backend/db"
)

type Server struct {
	authorizationSecret string

	dbClient    db.Client
	cacheClient cache.Client
	analyzer    *analytics.Analyzer

	similarityThreshold float64
	nakamotoThreshold   float64

	logger *zap.Logger
}

func (s *Server) SetSecret(secret string) *Server {
	s.authorizationSecret = secret
	return s
}

func (s *Server) SetLogger(logger *zap.Logger) *Server {
	s.logger = logger
	return s
}

func (s *Server) SetStorage(db db.Client) *Server {
	s.dbClient = db
	return s
}

func (s *Server) SetCache(cache cache.Client) *Server {
	s.cacheClient = cache
	return s
}

func (s *Server) SetAnalyzer(analyzer *analytics.Analyzer) *Server {
	s.analyzer = analyzer
	return s
}

func (s *Server) SetThresholds(similarity, nakamoto float64) *Server {
	s.similarityThreshold = similarity
	s.nakamotoThreshold = nakamoto
	return s
}
