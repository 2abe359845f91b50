package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eliteshop/storefront/internal/models"
)

type MongoOrderStore struct {
	coll *mongo.Collection
}

func NewMongoOrderStore(coll *mongo.Collection) *MongoOrderStore {
	return &MongoOrderStore{coll: coll}
}

func (s *MongoOrderStore) Create(ctx context.Context, order *models.Order) error {
	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (s *MongoOrderStore) Get(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (s *MongoOrderStore) ListByUser(ctx context.Context, userID string, page, limit int) (*models.OrderList, error) {
	return s.list(ctx, bson.M{"userId": userID}, page, limit)
}

func (s *MongoOrderStore) List(ctx context.Context, status models.Status, page, limit int) (*models.OrderList, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return s.list(ctx, query, page, limit)
}

func (s *MongoOrderStore) list(ctx context.Context, query bson.M, page, limit int) (*models.OrderList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return &models.OrderList{
		Orders:      orders,
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o models.Order
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &o, nil
}

func (s *MongoOrderStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
