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

type QuizStore struct {
	coll *mongo.Collection
}

func NewQuizStore(db *mongo.Database) *QuizStore {
	return &QuizStore{coll: db.Collection("quizzes")}
}

func (s *QuizStore) Create(ctx context.Context, q *domain.Quiz) error {
	if q.AllowedUsers == nil {
		q.AllowedUsers = []string{}
	}
	if q.Questions == nil {
		q.Questions = []domain.Question{}
	}
	res, err := s.coll.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	q.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *QuizStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	var q domain.Quiz
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("quiz %s: %w", id.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	return &q, nil
}

// ListFor returns quizzes the user created or is invited to by email.
func (s *QuizStore) ListFor(ctx context.Context, userID primitive.ObjectID, email string) ([]domain.Quiz, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"creator": userID},
		bson.M{"allowedUsers": email},
	}}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer cur.Close(ctx)

	quizzes := []domain.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, fmt.Errorf("decode quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *QuizStore) ListByCreator(ctx context.Context, userID primitive.ObjectID) ([]domain.Quiz, error) {
	cur, err := s.coll.Find(ctx, bson.M{"creator": userID})
	if err != nil {
		return nil, fmt.Errorf("list own quizzes: %w", err)
	}
	defer cur.Close(ctx)

	quizzes := []domain.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, fmt.Errorf("decode quizzes: %w", err)
	}
	return quizzes, nil
}

// AddQuestion appends a question with a fresh id and returns the
// updated quiz. Only the creator may add questions.
func (s *QuizStore) AddQuestion(ctx context.Context, id, requester primitive.ObjectID, q domain.Question) (*domain.Quiz, error) {
	quiz, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsCreator(requester) {
		return nil, fmt.Errorf("quiz %s: %w", id.Hex(), domain.ErrForbidden)
	}

	q.ID = primitive.NewObjectID()
	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$push": bson.M{"questions": q}})
	if err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	quiz.Questions = append(quiz.Questions, q)
	return quiz, nil
}

func (s *QuizStore) Delete(ctx context.Context, id, requester primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "creator": requester})
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("quiz %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}
