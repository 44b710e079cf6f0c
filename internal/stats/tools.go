package stats

import (
	"sort"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
)

// toolPrefixes map a recipient namespace ("web.run") to a tool name. Only
// "web" also matches on its own.
var toolPrefixes = []struct {
	namespace string
	name      string
}{
	{"web", "Web Search"},
	{"canmore", "Canvas"},
	{"browser", "Web Browsing"},
	{"computer", "Computer Use"},
	{"research_kickoff_tool", "Deep Research"},
}

var toolExact = map[string]string{
	"python":        "Code Interpreter",
	"bio":           "Memory",
	"dalle.text2im": "DALL-E",
}

// ToolName maps a message recipient to a display name. It returns "" for
// "all", empty, and unknown recipients.
func ToolName(recipient string) string {
	if recipient == "" || recipient == "all" {
		return ""
	}
	if recipient == "web" {
		return "Web Search"
	}
	if name, ok := toolExact[recipient]; ok {
		return name
	}
	for _, p := range toolPrefixes {
		if strings.HasPrefix(recipient, p.namespace+".") {
			return p.name
		}
	}
	return ""
}

// ToolsAndModels tallies tool invocations, assistant model slugs and
// thinking-mode responses across every walked message.
func ToolsAndModels(convs []parse.Conversation, opts Options) *ToolsAndModelsData {
	if len(convs) == 0 {
		return nil
	}

	tools := newTally()
	models := newTally()
	thinking := 0

	for _, c := range convs {
		for _, m := range parse.Walk(c.Mapping) {
			if m.Role != "user" && m.Role != "assistant" {
				continue
			}
			if name := ToolName(m.Recipient); name != "" {
				tools.add(name)
			}
			if m.Role != "assistant" {
				continue
			}
			if m.ModelSlug != "" {
				models.add(m.ModelSlug)
			}
			if m.ReasoningStatus != "" || strings.Contains(m.ModelSlug, "thinking") {
				thinking++
			}
		}
	}

	toolList := tools.list()
	sort.Slice(toolList, func(i, j int) bool { return toolList[i].Name < toolList[j].Name })

	return &ToolsAndModelsData{
		Tools:             toolList,
		Models:            models.ranked(),
		ThinkingModeCount: thinking,
	}
}

// tally counts keys and remembers first-seen order for stable ranking.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally) list() []NameCount {
	out := make([]NameCount, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, NameCount{Name: k, Count: t.counts[k]})
	}
	return out
}

// ranked sorts by descending count; ties keep first-seen order.
func (t *tally) ranked() []NameCount {
	out := t.list()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
