package docstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoOps = map[Op]string{
	OpEqual:        "$eq",
	OpLess:         "$lt",
	OpLessEqual:    "$lte",
	OpGreater:      "$gt",
	OpGreaterEqual: "$gte",
}

// MongoStore maps collections onto MongoDB collections. Ids are ObjectID hex strings stored in _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects and pings the server.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, unavailable("connect mongo", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, unavailable("ping mongo", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get "+collection, err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := validateQuery(q); err != nil {
		return nil, unavailable("list "+collection, err)
	}

	filter := bson.M{}
	for _, f := range q.Where {
		cond, ok := filter[f.Field].(bson.M)
		if !ok {
			cond = bson.M{}
			filter[f.Field] = cond
		}
		cond[mongoOps[f.Op]] = f.Value
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Direction == Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
		if _, ok := filter[q.OrderBy]; !ok {
			filter[q.OrderBy] = bson.M{"$exists": true}
		}
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("list "+collection, err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, unavailable("list "+collection, err)
	}

	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, *fromBSON(raw))
	}
	return docs, nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	id := primitive.NewObjectID().Hex()
	doc := bson.M{"_id": id}
	for k, v := range data {
		doc[k] = v
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", unavailable("create "+collection, err)
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	coll := s.db.Collection(collection)
	filter := bson.M{"_id": id}
	var err error
	if merge {
		_, err = coll.UpdateOne(ctx, filter, bson.M{"$set": data}, options.Update().SetUpsert(true))
	} else {
		_, err = coll.ReplaceOne(ctx, filter, data, options.Replace().SetUpsert(true))
	}
	if err != nil {
		return unavailable("update "+collection, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return unavailable("delete "+collection, err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func fromBSON(raw bson.M) *Document {
	doc := &Document{Data: make(map[string]interface{}, len(raw))}
	for k, v := range raw {
		if k == "_id" {
			switch id := v.(type) {
			case string:
				doc.ID = id
			case primitive.ObjectID:
				doc.ID = id.Hex()
			}
			continue
		}
		doc.Data[k] = normalizeBSON(v)
	}
	return doc
}

func normalizeBSON(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = normalizeBSON(item)
		}
		return out
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = normalizeBSON(item)
		}
		return out
	default:
		return v
	}
}
