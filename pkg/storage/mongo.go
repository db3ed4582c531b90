package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/moodboard/pkg/timeline"
)

// MongoCollection is the collection snapshots are written to.
const MongoCollection = "snapshots"

// snapshotDoc is one persisted snapshot. The snapshot itself is stored as
// its JSON encoding so every backend shares one wire format.
type snapshotDoc struct {
	BoardID   string    `bson:"board_id"`
	Seq       int64     `bson:"seq"`
	CreatedAt time.Time `bson:"created_at"`
	Data      []byte    `bson:"data"`
}

// MongoStore keeps one document per snapshot, ordered by a per-board
// sequence number.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	owned   bool
	backoff Backoff
}

// NewMongoStore connects to uri and prepares the snapshots collection in
// database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if database == "" {
		database = "moodboard"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := NewMongoStoreFromClient(client, database)
	s.owned = true
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close does not
// disconnect it.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client:  client,
		coll:    client.Database(database).Collection(MongoCollection),
		backoff: DefaultBackoff,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create snapshot index: %w", err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, boardID string) ([]timeline.Snapshot, error) {
	if err := ValidateBoardID(boardID); err != nil {
		return nil, err
	}

	var docs []snapshotDoc
	err := s.backoff.Do(ctx, func() error {
		opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
		cur, err := s.coll.Find(ctx, bson.M{"board_id": boardID}, opts)
		if err != nil {
			return mongoRetryable(err)
		}
		docs = docs[:0]
		return mongoRetryable(cur.All(ctx, &docs))
	})
	if err != nil {
		return nil, storageErr("load", boardID, err)
	}

	snaps := make([]timeline.Snapshot, 0, len(docs))
	for _, d := range docs {
		snap, err := timeline.UnmarshalSnapshot(d.Data)
		if err != nil {
			return nil, storageErr("load", boardID, fmt.Errorf("seq %d: %w", d.Seq, err))
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Append inserts snap with the next sequence number. The number is chosen
// once; a retry after a lost reply reuses it, so the unique index stops a
// second copy. A duplicate key means either that earlier attempt landed or a
// concurrent writer took the number, in which case a fresh one is chosen.
func (s *MongoStore) Append(ctx context.Context, boardID string, snap timeline.Snapshot) error {
	if err := ValidateBoardID(boardID); err != nil {
		return err
	}
	data, err := timeline.MarshalSnapshot(snap.Clone())
	if err != nil {
		return storageErr("append to", boardID, err)
	}

	seq := int64(-1)
	err = s.backoff.Do(ctx, func() error {
		if seq < 0 {
			next, err := s.nextSeq(ctx, boardID)
			if err != nil {
				return mongoRetryable(err)
			}
			seq = next
		}
		_, err := s.coll.InsertOne(ctx, snapshotDoc{
			BoardID:   boardID,
			Seq:       seq,
			CreatedAt: snap.Time().UTC(),
			Data:      data,
		})
		if !mongo.IsDuplicateKeyError(err) {
			return mongoRetryable(err)
		}

		ours, ferr := s.storedAt(ctx, boardID, seq, data)
		if ferr != nil {
			return mongoRetryable(ferr)
		}
		if ours {
			return nil
		}
		seq = -1
		return Retryable(err)
	})
	if err != nil {
		return storageErr("append to", boardID, err)
	}
	return nil
}

// storedAt reports whether the document at (boardID, seq) holds data.
func (s *MongoStore) storedAt(ctx context.Context, boardID string, seq int64, data []byte) (bool, error) {
	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"board_id": boardID, "seq": seq}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(doc.Data, data), nil
}

func (s *MongoStore) nextSeq(ctx context.Context, boardID string) (int64, error) {
	var last snapshotDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}})
	err := s.coll.FindOne(ctx, bson.M{"board_id": boardID}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Seq + 1, nil
}

// Close disconnects the client if this store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func mongoRetryable(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return Retryable(err)
	}
	return err
}

var _ Store = (*MongoStore)(nil)
