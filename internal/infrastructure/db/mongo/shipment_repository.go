package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

const collectionShipments = "shipments"

// ShipmentRepository implements ports.ShipmentRepository using MongoDB. The
// tracking id is the document _id.
type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.ShipmentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := s.Clone()
	doc.ID = domain.NormalizeTrackingID(doc.ID)
	doc.Normalize()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateShipment
		}
		return err
	}
	return nil
}

// FindByID retrieves a shipment by tracking id.
func (r *ShipmentRepository) FindByID(ctx context.Context, trackingID string) (*domain.ShipmentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := domain.NormalizeTrackingID(trackingID)
	s, err := r.findOne(ctx, bson.M{"_id": id}, nil)
	if errors.Is(err, domain.ErrShipmentNotFound) && domain.IsScanAlias(id) {
		// Scanner aliases resolve to the first stored id with the same prefix.
		prefix := bson.M{"_id": bson.M{"$regex": "^" + domain.ScanAliasPrefix}}
		return r.findOne(ctx, prefix, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
	}
	return s, err
}

func (r *ShipmentRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.ShipmentRecord, error) {
	var s domain.ShipmentRecord
	var findOpts []*options.FindOneOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	err := r.col.FindOne(ctx, filter, findOpts...).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	s.Normalize()
	return &s, nil
}

// AppendEvent pushes event to the front of the history in a single update
// guarded on the history size, so a concurrent writer makes it match nothing.
func (r *ShipmentRepository) AppendEvent(ctx context.Context, trackingID string, expectedLen int, event domain.TrackingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := domain.NormalizeTrackingID(trackingID)
	filter := bson.M{
		"_id":     id,
		"stage":   bson.M{"$ne": domain.StageDelivered},
		"history": bson.M{"$size": expectedLen},
	}
	update := bson.M{
		"$push": bson.M{"history": bson.M{
			"$each":     []domain.TrackingEvent{event},
			"$position": 0,
		}},
		"$set": bson.M{"status": event.Status, "stage": event.Stage},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: work out why.
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Delivered() {
		return domain.ErrShipmentDelivered
	}
	return domain.ErrConcurrentUpdate
}

// List returns a page of shipments, newest first.
func (r *ShipmentRepository) List(ctx context.Context, f ports.ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Stage != "" {
		stage, err := domain.ParseStageName(f.Stage)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
		}
		filter["stage"] = stage
	}
	if f.ActiveOnly {
		if _, ok := filter["stage"]; ok {
			filter["$and"] = bson.A{bson.M{"stage": bson.M{"$ne": domain.StageDelivered}}}
		} else {
			filter["stage"] = bson.M{"$ne": domain.StageDelivered}
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.ShipmentRecord
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	for _, s := range items {
		s.Normalize()
	}
	return items, total, nil
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "stage", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
