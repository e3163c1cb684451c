// Package analytics implements the concentration and governance-network
// analysis engine: inequality metrics over balance vectors, voting-block
// detection over vote agreement graphs and delegation-network analysis.
//
// Every public method is a pure function of its arguments. Degenerate input
// produces zero or empty results, malformed records are skipped, and
// unexpected failures are recovered at the method boundary into a result
// carrying an error field, so one bad protocol cannot abort a batch run.
package analytics

import (
	"go.uber.org/zap"
)

type Analyzer struct {
	logger *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}
