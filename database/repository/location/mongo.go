package locationRepo

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

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

func NewMongoLocationRepo() LocationRepository {
	repo := &MongoLocationRepo{coll: database.GetDatabase().Collection("locations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create location indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLocationRepo) GetAll() ([]models.Location, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "location", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cursor.Close(ctx)

	locations := []models.Location{}
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, nil
}

func (r *MongoLocationRepo) findOne(filter bson.M) (*models.Location, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var location models.Location
	if err := r.coll.FindOne(ctx, filter).Decode(&location); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *MongoLocationRepo) GetByID(id string) (*models.Location, error) {
	location, err := r.findOne(bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location with id %s: %w", id, err)
	}
	return location, nil
}

func (r *MongoLocationRepo) GetByName(name string) (*models.Location, error) {
	location, err := r.findOne(bson.M{"location": name})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location %q: %w", name, err)
	}
	return location, nil
}

func (r *MongoLocationRepo) Create(location *models.Location) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *MongoLocationRepo) Rename(id, name string) (*models.Location, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"location": name, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var location models.Location
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&location); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to rename location %s: %w", id, err)
	}
	return &location, nil
}

func (r *MongoLocationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
