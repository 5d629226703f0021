package models

import "time"

type ContentType string

const (
	ContentText     ContentType = "text"
	ContentImage    ContentType = "image"
	ContentLocation ContentType = "location"
)

type Message struct {
	ID             string       `bson:"id" json:"id"`
	ConversationID string       `bson:"conversationId" json:"conversationId"`
	SenderID       string       `bson:"senderId" json:"senderId"`
	Content        string       `bson:"content" json:"content"`
	ContentType    ContentType  `bson:"contentType" json:"contentType"`
	ImageURL       string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location       *Coordinates `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	Read           bool         `bson:"read" json:"read"`
}

type Conversation struct {
	ID           string    `bson:"id" json:"id"`
	Participants []string  `bson:"participants" json:"participants"`
	LastMessage  *Message  `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
