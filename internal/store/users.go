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

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection("users")}
}

// Create inserts the user; the email must be unused.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	err := s.coll.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return fmt.Errorf("email %s: %w", u.Email, domain.ErrDuplicate)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("check email: %w", err)
	}

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// GetDisplayName implements the coordinator's user lookup. Unknown and
// malformed ids both report domain.ErrNotFound; the caller substitutes
// a placeholder name.
func (s *UserStore) GetDisplayName(ctx context.Context, userID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", fmt.Errorf("user id %q: %w", userID, domain.ErrNotFound)
	}
	u, err := s.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
