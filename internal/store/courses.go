package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclass/classroom/internal/domain"
)

type CourseStore struct {
	coll *mongo.Collection
}

func NewCourseStore(db *mongo.Database) *CourseStore {
	return &CourseStore{coll: db.Collection("courses")}
}

func (s *CourseStore) Create(ctx context.Context, c *domain.Course) error {
	if c.Materials == nil {
		c.Materials = []domain.Material{}
	}
	if c.Students == nil {
		c.Students = []primitive.ObjectID{}
	}
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CourseStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var c domain.Course
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("course %s: %w", id.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &c, nil
}

// List returns every course; browsing is open to all signed-in users.
func (s *CourseStore) List(ctx context.Context) ([]domain.Course, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []domain.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

// ListMine returns courses the user created or enrolled in.
func (s *CourseStore) ListMine(ctx context.Context, userID primitive.ObjectID) ([]domain.Course, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"creator": userID},
		bson.M{"students": userID},
	}}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []domain.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

// Update overwrites name, description and content. Caller checks the
// creator.
func (s *CourseStore) Update(ctx context.Context, c *domain.Course) error {
	_, err := s.coll.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"name":        c.Name,
		"description": c.Description,
		"content":     c.Content,
	}})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

func (s *CourseStore) AddMaterial(ctx context.Context, id primitive.ObjectID, m domain.Material) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$push": bson.M{"materials": m}})
	if err != nil {
		return fmt.Errorf("add material: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("course %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

// Enroll adds the student once; enrolling twice is a no-op.
func (s *CourseStore) Enroll(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{"students": userID}})
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("course %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

func (s *CourseStore) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "creator": requester})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("course %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}
