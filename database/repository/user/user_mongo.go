package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearheadspace/database"
	"clearheadspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.Collection("users")
	return &MongoUserRepo{coll: coll}
}

func (r *MongoUserRepo) GetByUID(uid string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	filter := bson.M{"uid": uid}
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user with uid %s: %w", uid, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) Upsert(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"uid": user.UID}
	update := bson.M{"$set": user}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert user with uid %s: %w", user.UID, err)
	}
	return nil
}

func (r *MongoUserRepo) SetWelcomeSent(uid string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"uid": uid}
	update := bson.M{"$set": bson.M{
		"welcomeSent": true,
		"updatedAt":   time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with uid %s: %w", uid, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", uid, ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepo) Delete(uid string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"uid": uid})
	if err != nil {
		return fmt.Errorf("failed to delete user with uid %s: %w", uid, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", uid, ErrNotFound)
	}
	return nil
}
