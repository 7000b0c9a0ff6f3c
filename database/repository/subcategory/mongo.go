package subcategoryRepo

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

// MongoSubcategoryRepo implements SubcategoryRepository using MongoDB.
type MongoSubcategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoSubcategoryRepo() SubcategoryRepository {
	repo := &MongoSubcategoryRepo{coll: database.GetDatabase().Collection("subcategories")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create subcategory indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubcategoryRepo) find(filter bson.M) ([]models.Subcategory, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.Subcategory{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *MongoSubcategoryRepo) GetAll() ([]models.Subcategory, error) {
	subs, err := r.find(bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return subs, nil
}

func (r *MongoSubcategoryRepo) GetByID(id string) (*models.Subcategory, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sub models.Subcategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch subcategory with id %s: %w", id, err)
	}
	return &sub, nil
}

func (r *MongoSubcategoryRepo) GetByIDs(ids []string) ([]models.Subcategory, error) {
	subs, err := r.find(bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subcategories: %w", err)
	}
	return subs, nil
}

func (r *MongoSubcategoryRepo) GetByCategory(categoryID string) ([]models.Subcategory, error) {
	subs, err := r.find(bson.M{"category": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories of category %s: %w", categoryID, err)
	}
	return subs, nil
}

func (r *MongoSubcategoryRepo) Create(sub *models.Subcategory) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *MongoSubcategoryRepo) UpdateSetDocument(id string, updateDoc bson.M) (*models.Subcategory, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sub models.Subcategory
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, setDocument(updateDoc, time.Now()), opts).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update subcategory with id %s: %w", id, err)
	}
	return &sub, nil
}

func (r *MongoSubcategoryRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete subcategory with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoSubcategoryRepo) DeleteByCategory(categoryID string) ([]models.Subcategory, error) {
	subs, err := r.GetByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return subs, nil
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"category": categoryID}); err != nil {
		return nil, fmt.Errorf("failed to delete subcategories of category %s: %w", categoryID, err)
	}
	return subs, nil
}

// setDocument wraps a partial update in $set and stamps updatedAt. The id
// cannot be changed and updateDoc is left untouched.
func setDocument(updateDoc bson.M, now time.Time) bson.M {
	set := bson.M{}
	for k, v := range updateDoc {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = now
	return bson.M{"$set": set}
}
