package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Question struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Text    string             `bson:"text" json:"text"`
	Options []string           `bson:"options" json:"options"`
	Correct string             `bson:"correct" json:"correct"`
}

type Quiz struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Topic        string             `bson:"topic" json:"topic"`
	Creator      primitive.ObjectID `bson:"creator" json:"creator"`
	AllowedUsers []string           `bson:"allowedUsers" json:"allowedUsers"`
	Questions    []Question         `bson:"questions" json:"questions"`
}

func (q *Quiz) IsCreator(uid primitive.ObjectID) bool {
	return q.Creator == uid
}

func (q *Quiz) IsInvited(email string) bool {
	for _, e := range q.AllowedUsers {
		if e == email {
			return true
		}
	}
	return false
}

// Score counts answers matching the correct option, keyed by question id.
func (q *Quiz) Score(answers map[string]string) int {
	score := 0
	for _, question := range q.Questions {
		if answers[question.ID.Hex()] == question.Correct {
			score++
		}
	}
	return score
}
