package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eliteshop/storefront/internal/models"
)

// MongoProductStore backs the catalog with a MongoDB collection.
type MongoProductStore struct {
	coll *mongo.Collection
}

func NewMongoProductStore(coll *mongo.Collection) *MongoProductStore {
	return &MongoProductStore{coll: coll}
}

func (s *MongoProductStore) List(ctx context.Context, filter ProductFilter) (*models.ProductList, error) {
	filter.Normalize()

	query := bson.M{"isActive": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	direction := 1
	if filter.SortDesc {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField(filter.SortBy), Value: direction}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &models.ProductList{
		Products:    products,
		Total:       total,
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
	}, nil
}

func (s *MongoProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (s *MongoProductStore) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	now := time.Now()
	p := models.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Stock:         req.Stock,
		Featured:      req.Featured,
		Tags:          req.Tags,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		set["originalPrice"] = *req.OriginalPrice
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &p, nil
}

func (s *MongoProductStore) Deactivate(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoProductStore) Categories(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// ReserveStock relies on a conditional findOneAndUpdate so the stock check
// and the decrement are a single document operation. Two concurrent
// reservations cannot both pass the check.
func (s *MongoProductStore) ReserveStock(ctx context.Context, id string, quantity int) (*LineSnapshot, error) {
	filter := bson.M{"_id": id, "isActive": true, "stock": bson.M{"$gte": quantity}}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var p models.Product
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err == nil {
		return &LineSnapshot{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	// No match: either the product is gone/inactive or the stock ran short.
	var existing models.Product
	err = s.coll.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}
	return nil, &InsufficientStockError{ProductName: existing.Name, Available: existing.Stock}
}

func (s *MongoProductStore) ReleaseStock(ctx context.Context, id string, quantity int) error {
	update := bson.M{
		"$inc": bson.M{"stock": quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoProductStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func sortField(sortBy string) string {
	switch sortBy {
	case "price", "name", "rating":
		return sortBy
	default:
		return "createdAt"
	}
}
