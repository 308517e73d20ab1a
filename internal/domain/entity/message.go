package entity

import "time"

type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Message is one entry of a direct conversation. The backend returns a
// thread in chronological order and the dashboard never re-sorts it.
type Message struct {
	ID         string      `json:"id"`
	Content    string      `json:"content"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	CreatedAt  time.Time   `json:"createdAt"`
	Sender     Participant `json:"sender"`
}

// Contact is the counterpart of a conversation with a denormalized preview
// of the last exchanged message.
type Contact struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	LastMessage     string     `json:"lastMessage,omitempty"`
	LastMessageDate *time.Time `json:"lastMessageDate,omitempty"`
	UnreadCount     int        `json:"unreadCount"`
}

type SendMessageInput struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}
