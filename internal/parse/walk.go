package parse

// MessageDescriptor is a flattened view of one visible message.
type MessageDescriptor struct {
	NodeID          string
	Role            string
	Text            string
	CreateTime      float64 // epoch seconds, 0 when absent
	Recipient       string
	ModelSlug       string
	ReasoningStatus string
	Metadata        Metadata
}

// Walk visits every node reachable from the root in pre-order, children in
// listed order, and returns the visible messages that carry a role.
// Each node is visited at most once, so cycles in malformed data terminate.
// A mapping without a root yields nil.
func Walk(m Mapping) []MessageDescriptor {
	rootID, ok := m.Root()
	if !ok {
		return nil
	}

	var out []MessageDescriptor
	visited := make(map[string]struct{}, m.Len())
	stack := []string{rootID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[id]; seen {
			continue
		}
		node, ok := m.Node(id)
		if !ok {
			continue
		}
		visited[id] = struct{}{}

		if msg := node.Message; msg != nil && !msg.Hidden() && msg.Author.Role != "" {
			out = append(out, MessageDescriptor{
				NodeID:          id,
				Role:            msg.Author.Role,
				Text:            msg.Content.String(),
				CreateTime:      msg.CreateTime,
				Recipient:       msg.Recipient,
				ModelSlug:       msg.Metadata.ModelSlug,
				ReasoningStatus: msg.Metadata.ReasoningStatus,
				Metadata:        msg.Metadata,
			})
		}

		// push in reverse so the first child is popped next
		for i := len(node.Children) - 1; i >= 0; i-- {
			if _, seen := visited[node.Children[i]]; !seen {
				stack = append(stack, node.Children[i])
			}
		}
	}
	return out
}
