package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/govlens/governance-backend/types"
)

// Report kinds stored in the reports collection, one document per
// protocol and kind.
const (
	ReportConcentration = "concentration"
	ReportBlocks        = "blocks"
	ReportNetwork       = "network"
)

type IReports interface {
	UpsertConcentrationReport(ctx context.Context, protocol string, report *types.MetricsReport) error
	ConcentrationReport(ctx context.Context, protocol string) (*types.MetricsReport, error)
	UpsertBlockReport(ctx context.Context, protocol string, report *types.BlockResult) error
	BlockReport(ctx context.Context, protocol string) (*types.BlockResult, error)
	UpsertNetworkReport(ctx context.Context, protocol string, report *types.NetworkResult) error
	NetworkReport(ctx context.Context, protocol string) (*types.NetworkResult, error)
}

type concentrationDoc struct {
	Protocol  string               `bson:"protocol"`
	Kind      string               `bson:"kind"`
	UpdatedAt int64                `bson:"updatedAt"`
	Report    *types.MetricsReport `bson:"report"`
}

type blockDoc struct {
	Protocol  string             `bson:"protocol"`
	Kind      string             `bson:"kind"`
	UpdatedAt int64              `bson:"updatedAt"`
	Report    *types.BlockResult `bson:"report"`
}

type networkDoc struct {
	Protocol  string               `bson:"protocol"`
	Kind      string               `bson:"kind"`
	UpdatedAt int64                `bson:"updatedAt"`
	Report    *types.NetworkResult `bson:"report"`
}

func (m *mongoDB) upsertReport(protocol, kind string, doc interface{}) error {
	_, err := m.wrapper.C(cReports).Upsert(bson.M{"protocol": protocol, "kind": kind}, doc)
	return err
}

func (m *mongoDB) UpsertConcentrationReport(ctx context.Context, protocol string, report *types.MetricsReport) error {
	return m.upsertReport(protocol, ReportConcentration, &concentrationDoc{
		Protocol:  protocol,
		Kind:      ReportConcentration,
		UpdatedAt: time.Now().Unix(),
		Report:    report,
	})
}

func (m *mongoDB) ConcentrationReport(ctx context.Context, protocol string) (*types.MetricsReport, error) {
	var doc concentrationDoc
	if err := m.wrapper.C(cReports).FindOne(bson.M{"protocol": protocol, "kind": ReportConcentration}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Report, nil
}

func (m *mongoDB) UpsertBlockReport(ctx context.Context, protocol string, report *types.BlockResult) error {
	return m.upsertReport(protocol, ReportBlocks, &blockDoc{
		Protocol:  protocol,
		Kind:      ReportBlocks,
		UpdatedAt: time.Now().Unix(),
		Report:    report,
	})
}

func (m *mongoDB) BlockReport(ctx context.Context, protocol string) (*types.BlockResult, error) {
	var doc blockDoc
	if err := m.wrapper.C(cReports).FindOne(bson.M{"protocol": protocol, "kind": ReportBlocks}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Report, nil
}

func (m *mongoDB) UpsertNetworkReport(ctx context.Context, protocol string, report *types.NetworkResult) error {
	return m.upsertReport(protocol, ReportNetwork, &networkDoc{
		Protocol:  protocol,
		Kind:      ReportNetwork,
		UpdatedAt: time.Now().Unix(),
		Report:    report,
	})
}

func (m *mongoDB) NetworkReport(ctx context.Context, protocol string) (*types.NetworkResult, error) {
	var doc networkDoc
	if err := m.wrapper.C(cReports).FindOne(bson.M{"protocol": protocol, "kind": ReportNetwork}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Report, nil
}
