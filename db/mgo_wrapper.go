// Package db
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mgo struct {
	DB  *mongo.Database
	col *mongo.Collection
}

func (w *Mgo) Database(db *mongo.Database) {
	w.DB = db
}

// C returns a fresh handle bound to the named collection. The receiver is
// never mutated, so one shared Mgo is safe under concurrent queries.
func (w *Mgo) C(name string) *Mgo {
	return &Mgo{DB: w.DB, col: w.DB.Collection(name)}
}

func (w *Mgo) EnsureIndex(model []mongo.IndexModel) error {
	var err error
	opts := options.CreateIndexes().SetMaxTime(5 * time.Second)
	if len(model) == 1 {
		_, err = w.col.Indexes().CreateOne(context.Background(), model[0], opts)
	} else if len(model) > 1 {
		_, err = w.col.Indexes().CreateMany(context.Background(), model, opts)
	}
	return err
}

func (w *Mgo) Update(filter interface{}, update interface{},
	opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return w.col.UpdateOne(context.Background(), filter, update, opts...)
}

func (w *Mgo) Upsert(filter interface{}, update interface{},
	opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	opts = append(opts, options.Update().SetUpsert(true))
	return w.col.UpdateOne(context.Background(), filter, bson.M{"$set": update}, opts...)
}

func (w *Mgo) RemoveAll(filter interface{},
	opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return w.col.DeleteMany(context.Background(), filter, opts...)
}

func (w *Mgo) Remove(filter interface{},
	opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return w.col.DeleteOne(context.Background(), filter, opts...)
}

func (w *Mgo) Find(filter interface{},
	opts ...*options.FindOptions) (*mongo.Cursor, error) {
	return w.col.Find(context.Background(), filter, opts...)
}

func (w *Mgo) FindOne(filter interface{},
	opts ...*options.FindOneOptions) *mongo.SingleResult {
	return w.col.FindOne(context.Background(), filter, opts...)
}

func (w *Mgo) BulkWrite(models []mongo.WriteModel,
	opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	opts = append(opts, options.BulkWrite().SetOrdered(false), options.BulkWrite().SetBypassDocumentValidation(true))
	return w.col.BulkWrite(context.Background(), models, opts...)
}

func (w *Mgo) BulkUpsert(models []mongo.WriteModel,
	opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	opts = append(opts, options.BulkWrite().SetOrdered(false), options.BulkWrite().SetBypassDocumentValidation(true))
	return w.col.BulkWrite(context.Background(), models, opts...)
}

func (w *Mgo) Distinct(field string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	return w.col.Distinct(context.Background(), field, filter, opts...)
}

func (w *Mgo) Count(filter interface{},
	opts ...*options.CountOptions) (int64, error) {
	return w.col.CountDocuments(context.Background(), filter, opts...)
}

func (w *Mgo) Insert(document interface{},
	opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return w.col.InsertOne(context.Background(), document, opts...)
}

func (w *Mgo) DropDatabase(ctx context.Context) error {
	if err := w.DB.Drop(ctx); err != nil {
		return err
	}
	return nil
}
