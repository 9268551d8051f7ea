package systems

import (
	"fmt"

	"github.com/VAX325/ArcticLights/ecs"
)

// DefaultMaxMessages is how many messages a log keeps by default
const DefaultMaxMessages = 100

// MessageLog stores messages for the debug screen
type MessageLog struct {
	Messages    []ColoredMessage
	MaxMessages int
}

// NewMessageLog creates a new message log
func NewMessageLog(maxMessages int) *MessageLog {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &MessageLog{
		Messages:    []ColoredMessage{},
		MaxMessages: maxMessages,
	}
}

// Add adds a normal message to the log
func (ml *MessageLog) Add(message string) {
	ml.AddColored(message, MessageTypeNormal)
}

// AddColored adds a message of a specific type to the log
func (ml *MessageLog) AddColored(message string, messageType MessageType) {
	ml.Messages = append(ml.Messages, ColoredMessage{Text: message, Type: messageType})

	// Truncate if we have too many messages
	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []ColoredMessage {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Len returns the number of stored messages
func (ml *MessageLog) Len() int {
	return len(ml.Messages)
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []ColoredMessage{}
}

// AttachRegistryEvents logs every entity the registry adopts
func (ml *MessageLog) AttachRegistryEvents(events *ecs.EventManager) func() {
	return events.Subscribe(ecs.EntityInstantiatedEventType, func(e ecs.Event) {
		ev := e.(ecs.EntityInstantiatedEvent)
		if ev.Renamed() {
			ml.AddColored(fmt.Sprintf("%s '%s' registered as '%s'", ev.Kind, ev.Requested, ev.Name), MessageTypeAlert)
			return
		}
		ml.AddColored(fmt.Sprintf("%s '%s' registered", ev.Kind, ev.Name), MessageTypeRegistry)
	})
}

// LogContact is a ContactTracker callback that records new contacts
func (ml *MessageLog) LogContact(contact Contact) {
	ml.AddColored(fmt.Sprintf("%s touched %s", contact.NameA, contact.NameB), MessageTypeContact)
}
