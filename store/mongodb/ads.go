package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/store"
)

func (r *AdRepository) Create(ctx context.Context, ad models.Ad) (models.Ad, error) {
	now := time.Now().UTC()
	if ad.ID == "" {
		ad.ID = primitive.NewObjectID().Hex()
	}
	if ad.Status == "" {
		ad.Status = models.AdStatusPending
	}
	ad.CreatedAt = now
	ad.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, ad); err != nil {
		return models.Ad{}, fmt.Errorf("failed to insert ad: %w", err)
	}
	return ad, nil
}

func (r *AdRepository) GetByID(ctx context.Context, id string) (models.Ad, error) {
	var ad models.Ad
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ad)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Ad{}, store.ErrNotFound
	}
	if err != nil {
		return models.Ad{}, fmt.Errorf("failed to get ad: %w", err)
	}
	return ad, nil
}

func (r *AdRepository) ListAll(ctx context.Context) ([]models.Ad, error) {
	return r.list(ctx, bson.M{})
}

func (r *AdRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]models.Ad, error) {
	return r.list(ctx, bson.M{"submitter_id": submitterID})
}

func (r *AdRepository) list(ctx context.Context, filter bson.M) ([]models.Ad, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	defer cursor.Close(ctx)

	ads := []models.Ad{}
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, fmt.Errorf("failed to decode ads: %w", err)
	}
	return ads, nil
}

func (r *AdRepository) UpdateReview(ctx context.Context, id, status, note, reviewerID string) (models.Ad, error) {
	update := bson.M{"$set": bson.M{
		"status":      status,
		"review_note": note,
		"reviewer_id": reviewerID,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ad models.Ad
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&ad)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Ad{}, store.ErrNotFound
	}
	if err != nil {
		return models.Ad{}, fmt.Errorf("failed to update ad review: %w", err)
	}
	return ad, nil
}
