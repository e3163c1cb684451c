package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

type IProposals interface {
	createProposalsCollectionIndexes() []mongo.IndexModel
	UpsertProposal(ctx context.Context, proposal *types.Proposal) error
	AddVotes(ctx context.Context, protocol, proposalID string, votes []*types.Vote) error
	ProposalInfo(ctx context.Context, protocol, proposalID string) (*types.Proposal, error)
	GetListProposals(ctx context.Context, filter *types.ProposalFilter) ([]*types.Proposal, uint64, error)
	AllProposals(ctx context.Context, protocol string) ([]*types.Proposal, error)
	RemoveProposals(ctx context.Context, protocol string) error
}

func (m *mongoDB) createProposalsCollectionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "protocol", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.M{"updateTime": -1}, Options: options.Index().SetSparse(true)},
	}
}

func (m *mongoDB) UpsertProposal(ctx context.Context, proposal *types.Proposal) error {
	currentProposal, _ := m.ProposalInfo(ctx, proposal.Protocol, proposal.ID)
	if currentProposal != nil && len(proposal.Votes) == 0 {
		// metadata refresh, keep the recorded votes
		proposal.Votes = currentProposal.Votes
	}
	if err := m.upsertProposal(proposal); err != nil {
		return err
	}
	return nil
}

// AddVotes appends votes to a proposal document, creating the proposal when
// it does not exist yet.
func (m *mongoDB) AddVotes(ctx context.Context, protocol, proposalID string, votes []*types.Vote) error {
	if len(votes) == 0 {
		return nil
	}
	proposal, _ := m.ProposalInfo(ctx, protocol, proposalID)
	if proposal == nil {
		proposal = &types.Proposal{Protocol: protocol, ID: proposalID}
	}
	proposal.Votes = append(proposal.Votes, votes...)
	if err := m.upsertProposal(proposal); err != nil {
		m.logger.Warn("cannot add votes to proposal", zap.Error(err), zap.String("proposal", proposalID))
		return err
	}
	return nil
}

func (m *mongoDB) ProposalInfo(ctx context.Context, protocol, proposalID string) (*types.Proposal, error) {
	var result *types.Proposal
	err := m.wrapper.C(cProposals).FindOne(bson.M{"protocol": protocol, "id": proposalID}).Decode(&result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *mongoDB) upsertProposal(proposal *types.Proposal) error {
	proposal.UpdateTime = time.Now().Unix()
	model := []mongo.WriteModel{
		mongo.NewUpdateOneModel().SetUpsert(true).SetFilter(bson.M{"protocol": proposal.Protocol, "id": proposal.ID}).SetUpdate(bson.M{"$set": proposal}),
	}
	if _, err := m.wrapper.C(cProposals).BulkWrite(model); err != nil {
		return err
	}
	return nil
}

func (m *mongoDB) GetListProposals(ctx context.Context, filter *types.ProposalFilter) ([]*types.Proposal, uint64, error) {
	var (
		proposals []*types.Proposal
		crit      = bson.M{}
	)
	critBytes, err := bson.Marshal(filter)
	if err != nil {
		m.logger.Warn("Cannot marshal proposal filter criteria", zap.Error(err))
	}
	err = bson.Unmarshal(critBytes, &crit)
	if err != nil {
		m.logger.Warn("Cannot unmarshal proposal filter criteria", zap.Error(err))
	}
	opts := []*options.FindOptions{
		options.Find().SetSort(bson.M{"updateTime": -1}),
	}
	if filter.Pagination != nil {
		filter.Pagination.Sanitize()
		opts = append(opts, options.Find().SetSkip(int64(filter.Pagination.Skip)), options.Find().SetLimit(int64(filter.Pagination.Limit)))
	}
	cursor, err := m.wrapper.C(cProposals).Find(crit, opts...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get list proposals: %v", err)
	}
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, 0, err
	}
	total, err := m.wrapper.C(cProposals).Count(crit)
	if err != nil {
		return nil, 0, err
	}
	return proposals, uint64(total), nil
}

func (m *mongoDB) AllProposals(ctx context.Context, protocol string) ([]*types.Proposal, error) {
	var proposals []*types.Proposal
	cursor, err := m.wrapper.C(cProposals).Find(bson.M{"protocol": protocol}, options.Find().SetSort(bson.M{"updateTime": 1}))
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (m *mongoDB) RemoveProposals(ctx context.Context, protocol string) error {
	if _, err := m.wrapper.C(cProposals).RemoveAll(bson.M{"protocol": protocol}); err != nil {
		return err
	}
	return nil
}
