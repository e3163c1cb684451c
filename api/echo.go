// Package api
package api

import (
	"fmt"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/govlens/governance-backend/cfg"
)

type restDefinition struct {
	method      string
	path        string
	fn          func(c echo.Context) error
	middlewares []echo.MiddlewareFunc
}

func bind(gr *echo.Group, srv RestServer) {
	apis := []restDefinition{
		{
			method:      echo.GET,
			path:        "/ping",
			fn:          srv.Ping,
			middlewares: nil,
		},
		{
			method:      echo.GET,
			path:        "/status",
			fn:          srv.ServerStatus,
			middlewares: nil,
		},
		{
			method:      echo.PUT,
			path:        "/status",
			fn:          srv.UpdateServerStatus,
			middlewares: nil,
		},
		{
			method: echo.GET,
			path:   "/protocols",
			fn:     srv.Protocols,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/stats",
			fn:     srv.Stats,
		},
		// Ingest
		{
			method: echo.PUT,
			path:   "/protocols/:protocol/holders",
			fn:     srv.UpdateHolders,
		},
		{
			method: echo.PUT,
			path:   "/protocols/:protocol/proposals/:id/votes",
			fn:     srv.ImportVotes,
		},
		{
			method: echo.PUT,
			path:   "/protocols/:protocol/delegations",
			fn:     srv.UpdateDelegations,
		},
		// Records
		{
			method: echo.GET,
			// Query params: ?page=0&limit=10
			path: "/protocols/:protocol/holders",
			fn:   srv.Holders,
		},
		{
			method: echo.GET,
			// Query params: ?page=0&limit=10
			path: "/protocols/:protocol/proposals",
			fn:   srv.Proposals,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/proposals/:id",
			fn:     srv.ProposalDetails,
		},
		{
			method: echo.GET,
			// Query params: ?page=0&limit=10
			path: "/protocols/:protocol/delegations",
			fn:   srv.Delegations,
		},
		// Analysis
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/concentration",
			fn:     srv.Concentration,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/blocks",
			fn:     srv.VotingBlocks,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/blocks/influence",
			fn:     srv.BlockInfluence,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/blocks/patterns",
			fn:     srv.VotingPatterns,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/network",
			fn:     srv.DelegationNetwork,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/effectiveness",
			fn:     srv.DelegationEffectiveness,
		},
		{
			method: echo.GET,
			path:   "/protocols/:protocol/analysis/delegation",
			fn:     srv.DelegationMetrics,
		},
		{
			method: echo.GET,
			path:   "/simulate/holders",
			fn:     srv.SimulateHolders,
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

func Start(e *echo.Echo, srv RestServer, cfg cfg.AnalyticsConfig) {
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())

	v1Gr := e.Group("/api/v1")
	bind(v1Gr, srv)
	if err := e.Start(cfg.Port); err != nil {
		fmt.Println("cannot start echo server", err.Error())
		panic(err)
	}
}
