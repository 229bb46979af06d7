package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Participant struct {
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Username string             `bson:"username" json:"username"`
}

// LiveClass is the authoritative membership record for a live room.
// The room's host is derived, never stored: the connection whose user
// id equals Creator is the host.
type LiveClass struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Time          string             `bson:"time" json:"time"`
	Creator       primitive.ObjectID `bson:"creator" json:"creator"`
	AllowedEmails []string           `bson:"allowedEmails" json:"allowedEmails"`
	Participants  []Participant      `bson:"participants" json:"participants"`
}

func (lc *LiveClass) IsCreator(uid primitive.ObjectID) bool {
	return lc.Creator == uid
}

func (lc *LiveClass) IsInvited(email string) bool {
	for _, e := range lc.AllowedEmails {
		if e == email {
			return true
		}
	}
	return false
}

func (lc *LiveClass) HasParticipant(uid primitive.ObjectID) bool {
	for _, p := range lc.Participants {
		if p.UserID == uid {
			return true
		}
	}
	return false
}
