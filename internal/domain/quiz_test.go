package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuizScore(t *testing.T) {
	q1 := Question{ID: primitive.NewObjectID(), Text: "2+2", Options: []string{"3", "4"}, Correct: "4"}
	q2 := Question{ID: primitive.NewObjectID(), Text: "capital of France", Options: []string{"Paris", "Lyon"}, Correct: "Paris"}
	q3 := Question{ID: primitive.NewObjectID(), Text: "largest planet", Options: []string{"Mars", "Jupiter"}, Correct: "Jupiter"}
	quiz := Quiz{Questions: []Question{q1, q2, q3}}

	require.Equal(t, 3, quiz.Score(map[string]string{
		q1.ID.Hex(): "4",
		q2.ID.Hex(): "Paris",
		q3.ID.Hex(): "Jupiter",
	}))
	require.Equal(t, 1, quiz.Score(map[string]string{
		q1.ID.Hex(): "3",
		q2.ID.Hex(): "Paris",
	}))
	require.Equal(t, 0, quiz.Score(nil))
}

func TestQuizScoreIgnoresUnknownAnswers(t *testing.T) {
	q1 := Question{ID: primitive.NewObjectID(), Correct: "yes"}
	quiz := Quiz{Questions: []Question{q1}}

	require.Equal(t, 0, quiz.Score(map[string]string{primitive.NewObjectID().Hex(): "yes"}))
}

func TestLiveClassInvites(t *testing.T) {
	creator := primitive.NewObjectID()
	lc := LiveClass{
		Creator:       creator,
		AllowedEmails: []string{"a@x.com", "b@x.com"},
	}

	require.True(t, lc.IsCreator(creator))
	require.False(t, lc.IsCreator(primitive.NewObjectID()))
	require.True(t, lc.IsInvited("a@x.com"))
	require.False(t, lc.IsInvited("c@x.com"))
	require.False(t, lc.HasParticipant(creator))

	lc.Participants = append(lc.Participants, Participant{UserID: creator, Username: "Alice"})
	require.True(t, lc.HasParticipant(creator))
}
