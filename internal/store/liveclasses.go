package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openclass/classroom/internal/core"
	"github.com/openclass/classroom/internal/domain"
)

type LiveClassStore struct {
	coll *mongo.Collection
}

func NewLiveClassStore(db *mongo.Database) *LiveClassStore {
	return &LiveClassStore{coll: db.Collection("liveclasses")}
}

func (s *LiveClassStore) Create(ctx context.Context, lc *domain.LiveClass) error {
	if lc.AllowedEmails == nil {
		lc.AllowedEmails = []string{}
	}
	if lc.Participants == nil {
		lc.Participants = []domain.Participant{}
	}
	res, err := s.coll.InsertOne(ctx, lc)
	if err != nil {
		return fmt.Errorf("insert live class: %w", err)
	}
	lc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *LiveClassStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.LiveClass, error) {
	var lc domain.LiveClass
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&lc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("live class %s: %w", id.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find live class: %w", err)
	}
	return &lc, nil
}

// ListMine returns classes the user created or is invited to by email.
func (s *LiveClassStore) ListMine(ctx context.Context, userID primitive.ObjectID, email string) ([]domain.LiveClass, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"creator": userID},
		bson.M{"allowedEmails": email},
	}}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list live classes: %w", err)
	}
	defer cur.Close(ctx)

	classes := []domain.LiveClass{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode live classes: %w", err)
	}
	return classes, nil
}

func (s *LiveClassStore) ListByCreator(ctx context.Context, userID primitive.ObjectID) ([]domain.LiveClass, error) {
	cur, err := s.coll.Find(ctx, bson.M{"creator": userID})
	if err != nil {
		return nil, fmt.Errorf("list live classes: %w", err)
	}
	defer cur.Close(ctx)

	classes := []domain.LiveClass{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode live classes: %w", err)
	}
	return classes, nil
}

// Join records the user as a participant after the invite check.
func (s *LiveClassStore) Join(ctx context.Context, id primitive.ObjectID, user *domain.User) (*domain.LiveClass, error) {
	lc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lc.HasParticipant(user.ID) {
		return nil, fmt.Errorf("user %s: %w", user.ID.Hex(), domain.ErrAlreadyJoined)
	}
	if !lc.IsCreator(user.ID) && !lc.IsInvited(user.Email) {
		return nil, fmt.Errorf("user %s: %w", user.ID.Hex(), domain.ErrForbidden)
	}

	p := domain.Participant{UserID: user.ID, Username: user.Name}
	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$push": bson.M{"participants": p}})
	if err != nil {
		return nil, fmt.Errorf("join live class: %w", err)
	}
	lc.Participants = append(lc.Participants, p)
	return lc, nil
}

func (s *LiveClassStore) Leave(ctx context.Context, id, userID primitive.ObjectID) (*domain.LiveClass, error) {
	_, err := s.coll.UpdateByID(ctx, id,
		bson.M{"$pull": bson.M{"participants": bson.M{"userId": userID}}})
	if err != nil {
		return nil, fmt.Errorf("leave live class: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the class; only the creator may do so. A non-creator
// sees not-found, matching the read API.
func (s *LiveClassStore) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "creator": requester})
	if err != nil {
		return fmt.Errorf("delete live class: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("live class %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

// GetRoom implements the coordinator's membership source: it resolves a
// room id to the class creator and invite list.
func (s *LiveClassStore) GetRoom(ctx context.Context, roomID string) (core.RoomView, error) {
	oid, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		return core.RoomView{}, fmt.Errorf("room id %q: %w", roomID, domain.ErrNotFound)
	}
	lc, err := s.Get(ctx, oid)
	if err != nil {
		return core.RoomView{}, err
	}
	return core.RoomView{
		ID:            roomID,
		CreatorID:     lc.Creator.Hex(),
		AllowedEmails: lc.AllowedEmails,
	}, nil
}
