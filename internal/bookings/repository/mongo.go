package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/pkg/config"
	"reservations/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionName = "Bookings"
)

// bookingDocument is the stored shape of a booking. The date is kept as its
// YYYY-MM-DD text so the unique slot index compares calendar days exactly.
type bookingDocument struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	BookingID int64              `bson:"booking_id"`
	Name      string             `bson:"name"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Guests    int                `bson:"guests"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toDocument(b *model.Booking) bookingDocument {
	return bookingDocument{
		BookingID: b.ID,
		Name:      b.Name,
		Date:      b.Date.String(),
		Time:      b.Time,
		Guests:    b.Guests,
	}
}

func (d *bookingDocument) toModel() (*model.Booking, error) {
	date, err := model.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("booking %d has malformed date %q: %w", d.BookingID, d.Date, err)
	}
	return &model.Booking{
		ID:     d.BookingID,
		Name:   d.Name,
		Date:   date,
		Time:   d.Time,
		Guests: d.Guests,
	}, nil
}

func slotFilter(slot model.Slot) bson.M {
	return bson.M{"date": slot.Date.String(), "time": slot.Time}
}

type mongoBookingRepository struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoBookingRepository opens the bookings collection and makes sure the
// unique slot index exists before any write is accepted.
func NewMongoBookingRepository(ctx context.Context, cfg *config.Config) (BookingRepository, error) {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	r := &mongoBookingRepository{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: db.Collection(CollectionName),
	}

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *mongoBookingRepository) ensureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slot"),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("booking_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// withTimeout keeps the caller's deadline when it is shorter than timeout.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepository) FindBySlot(ctx context.Context, slot model.Slot) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.find(ctx, slotFilter(slot))
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(docs))
	for i := range docs {
		b, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc bookingDocument
	err := r.collection.FindOne(ctx, bson.M{"booking_id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return doc.toModel()
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := toDocument(booking)
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotConflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) Update(ctx context.Context, id int64, update *model.BookingUpdate) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	change := bson.M{
		"$set": bson.M{
			"date":   update.Date.String(),
			"time":   update.Time,
			"guests": update.Guests,
		},
	}

	var doc bookingDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"booking_id": id}, change, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, bookingserrors.ErrSlotConflict
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return doc.toModel()
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "_id", Value: 1}})

	err := r.collection.FindOneAndDelete(ctx, bson.M{"booking_id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bookingserrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()
	return r.client.Ping(ctx, readpref.Primary())
}
