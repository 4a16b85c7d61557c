package chat

// Role identifies the author of a message in a conversation.
type Role string

// Supported roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Message is a single role-tagged entry of a conversation.
type Message struct {
	Role    Role
	Content string
}
