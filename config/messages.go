package config

// MessagesConfig overrides the rejection messages. Primary messages are
// shown in order; advanced ones are drawn at random afterwards. Empty lists
// keep the built-in wording.
type MessagesConfig struct {
	Primary  []string `json:"primary"`
	Advanced []string `json:"advanced"`
}
