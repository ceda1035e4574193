package conversation

// Compression bounds the history handed to downstream consumers without
// losing recent detail: the active section stays verbatim, completed
// sections keep truncated user messages and summary assistant messages
// only.

const (
	// compressKeepPrefix is how much of a long user message survives
	// compaction.
	compressKeepPrefix = 120
	compressMarker     = " …[compressed]"
)

// CompressConversation applies the compaction policy to a message list.
// Messages tagged with the current section, and untagged messages, are
// never dropped or altered.
func (o *Orchestrator) CompressConversation(messages []Message) []Message {
	out := make([]Message, 0, len(messages))

	for _, msg := range messages {
		if msg.Section == "" || msg.Section == o.state.CurrentSection {
			out = append(out, msg)
			continue
		}

		if !o.state.IsCompleted(msg.Section) {
			out = append(out, msg)
			continue
		}

		switch {
		case msg.Role == RoleUser:
			if len(msg.Content) > compressKeepPrefix {
				msg.Content = msg.Content[:compressKeepPrefix] + compressMarker
			}
			out = append(out, msg)
		case msg.Summary:
			out = append(out, msg)
		}
	}

	return out
}
