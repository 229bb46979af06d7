package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Material struct {
	Filename string `bson:"filename" json:"filename"`
	FileURL  string `bson:"fileUrl" json:"fileUrl"`
}

type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Creator     primitive.ObjectID   `bson:"creator" json:"creator"`
	Content     string               `bson:"content,omitempty" json:"content,omitempty"`
	Materials   []Material           `bson:"materials" json:"materials"`
	Students    []primitive.ObjectID `bson:"students" json:"students"`
}

func (c *Course) IsCreator(uid primitive.ObjectID) bool {
	return c.Creator == uid
}

func (c *Course) HasStudent(uid primitive.ObjectID) bool {
	for _, s := range c.Students {
		if s == uid {
			return true
		}
	}
	return false
}
