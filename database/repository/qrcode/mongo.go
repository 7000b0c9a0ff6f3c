package qrcodeRepo

import (
	"context"
	"fmt"
	"time"

	"roomservice/database"
	"roomservice/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoQRCodeRepo implements QRCodeRepository using MongoDB.
type MongoQRCodeRepo struct {
	coll *mongo.Collection
}

func NewMongoQRCodeRepo() QRCodeRepository {
	repo := &MongoQRCodeRepo{coll: database.GetDatabase().Collection("qrcodes")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create qrcode indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoQRCodeRepo) find(filter bson.M) ([]models.QRCode, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	codes := []models.QRCode{}
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *MongoQRCodeRepo) GetAll() ([]models.QRCode, error) {
	codes, err := r.find(bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	return codes, nil
}

func (r *MongoQRCodeRepo) GetByID(id string) (*models.QRCode, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var qr models.QRCode
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&qr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch qr code with id %s: %w", id, err)
	}
	return &qr, nil
}

func (r *MongoQRCodeRepo) GetByLocation(locationID string) ([]models.QRCode, error) {
	codes, err := r.find(bson.M{"location": locationID})
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes of location %s: %w", locationID, err)
	}
	return codes, nil
}

func (r *MongoQRCodeRepo) Create(qr *models.QRCode) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	qr.CreatedAt = now
	qr.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, qr); err != nil {
		return fmt.Errorf("failed to create qr code: %w", err)
	}
	return nil
}

func (r *MongoQRCodeRepo) UpdateSetDocument(id string, updateDoc bson.M) (*models.QRCode, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range updateDoc {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var qr models.QRCode
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&qr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update qr code with id %s: %w", id, err)
	}
	return &qr, nil
}

func (r *MongoQRCodeRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete qr code with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoQRCodeRepo) DeleteByLocation(locationID string) ([]models.QRCode, error) {
	codes, err := r.GetByLocation(locationID)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return codes, nil
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"location": locationID}); err != nil {
		return nil, fmt.Errorf("failed to delete qr codes of location %s: %w", locationID, err)
	}
	return codes, nil
}
