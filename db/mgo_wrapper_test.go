// Package db
package db

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gotest.tools/assert"
)

// Concurrent callers share one wrapper, so C must hand out independent
// collection handles instead of retargeting the shared one.
func TestMgoCollectionHandlesAreIndependent(t *testing.T) {
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://localhost:27017"))
	assert.NilError(t, err)

	wrapper := &Mgo{}
	wrapper.Database(client.Database("governance"))

	holders := wrapper.C(cHolders)
	proposals := wrapper.C(cProposals)

	assert.Equal(t, cHolders, holders.col.Name())
	assert.Equal(t, cProposals, proposals.col.Name())
	// the earlier handle must not have been retargeted by the later C call
	assert.Equal(t, cHolders, holders.col.Name())
	// and the shared wrapper itself stays unbound
	assert.Assert(t, wrapper.col == nil)
}
