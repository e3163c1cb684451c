// Package api
package api

import (
	"github.com/labstack/echo"
)

// RestServer define all API expose
type RestServer interface {
	// General
	Ping(c echo.Context) error
	ServerStatus(c echo.Context) error
	UpdateServerStatus(c echo.Context) error
	Protocols(c echo.Context) error
	Stats(c echo.Context) error

	// Ingest
	UpdateHolders(c echo.Context) error
	ImportVotes(c echo.Context) error
	UpdateDelegations(c echo.Context) error

	// Records
	Holders(c echo.Context) error
	Proposals(c echo.Context) error
	ProposalDetails(c echo.Context) error
	Delegations(c echo.Context) error

	// Analysis
	Concentration(c echo.Context) error
	VotingBlocks(c echo.Context) error
	BlockInfluence(c echo.Context) error
	VotingPatterns(c echo.Context) error
	DelegationNetwork(c echo.Context) error
	DelegationEffectiveness(c echo.Context) error
	DelegationMetrics(c echo.Context) error

	// Dev helpers
	SimulateHolders(c echo.Context) error
}
