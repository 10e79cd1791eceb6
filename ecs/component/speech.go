package component

// SpeechBubble is a transient line of text shown above an entity.
type SpeechBubble struct {
	Key  string
	Text string
	TTL  int
}

var SpeechBubbleComponent = NewComponent[SpeechBubble]()
