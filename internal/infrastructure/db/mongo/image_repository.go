package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

const (
	collectionImages   = "images"
	collectionCounters = "counters"
	imageSeqCounter    = "images"
)

// imageDocument is the stored form of an image. Seq records insertion order,
// independent of the client-supplied createdAt.
type imageDocument struct {
	domain.Image `bson:",inline"`
	Seq          int64 `bson:"seq"`
}

// ImageRepository stores images in a single collection; the community
// listing is the isPublic subset of it.
type ImageRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{
		col:      db.Collection(collectionImages),
		counters: db.Collection(collectionCounters),
	}
}

// Create inserts a new image document stamped with the next insertion sequence.
func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, imageDocument{Image: *img, Seq: seq}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrImageExists
		}
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

// nextSeq atomically bumps the images counter, creating it on first use.
func (r *ImageRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": imageSeqCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next image seq: %w", err)
	}
	return counter.Seq, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, imageID string) (*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var img domain.Image
	if err := r.col.FindOne(ctx, bson.M{"_id": imageID}).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}
	return &img, nil
}

// ListByUser returns images in insertion order. An empty userID lists all.
func (r *ImageRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Image, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	return r.find(ctx, filter, opts)
}

// ListCommunity returns public images, most liked first, then most recent.
func (r *ImageRepository) ListCommunity(ctx context.Context) ([]*domain.Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "likes", Value: -1}, {Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"isPublic": true}, opts)
}

func (r *ImageRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer cur.Close(ctx)

	images := make([]*domain.Image, 0)
	if err := cur.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return images, nil
}

// IncrementLikes atomically adds one like to a public image.
func (r *ImageRepository) IncrementLikes(ctx context.Context, imageID string) (int, error) {
	filter := bson.M{"_id": imageID, "isPublic": true}
	update := bson.M{"$inc": bson.M{"likes": 1}}

	img, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return img.Likes, nil
}

// TogglePublic atomically negates isPublic on the owner's image.
func (r *ImageRepository) TogglePublic(ctx context.Context, imageID, ownerID string) (bool, error) {
	filter := bson.M{"_id": imageID, "userId": ownerID}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "isPublic", Value: bson.D{{Key: "$not", Value: bson.A{"$isPublic"}}}}}}},
	}

	img, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return img.IsPublic, nil
}

func (r *ImageRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update any) (*domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var img domain.Image
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("update image: %w", err)
	}
	return &img, nil
}

// Delete removes the owner's image and reports whether anything was removed.
func (r *ImageRepository) Delete(ctx context.Context, imageID, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": imageID, "userId": ownerID})
	if err != nil {
		return false, fmt.Errorf("delete image: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the indexes backing the two listings.
func (r *ImageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "isPublic", Value: 1}, {Key: "likes", Value: -1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
