// Package stats turns a chat export into the yearly "wrapped" statistics.
//
// Each aggregator is a pure function of the year-filtered conversations, so
// the Engine can run them concurrently over one decoded copy.
package stats

import (
	"context"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report holds every view. Any field may be nil when the archive lacks the
// data for it.
type Report struct {
	Year             int                    `json:"year" yaml:"year"`
	FirstConvo       *FirstConversationData `json:"firstConversation" yaml:"firstConversation"`
	DaysActive       *DaysActiveData        `json:"daysActive" yaml:"daysActive"`
	TimeOfDay        *TimeOfDayData         `json:"timeOfDay" yaml:"timeOfDay"`
	ToolsAndModels   *ToolsAndModelsData    `json:"toolsAndModels" yaml:"toolsAndModels"`
	Generations      *GenerationsData       `json:"generations" yaml:"generations"`
	ChatsAndMessages *ChatsAndMessagesData  `json:"chatsAndMessages" yaml:"chatsAndMessages"`
	Finale           *FinaleSlideData       `json:"finale" yaml:"finale"`
}

// Empty reports whether no conversation-based view could be computed.
func (r *Report) Empty() bool {
	return r.FirstConvo == nil && r.DaysActive == nil && r.TimeOfDay == nil &&
		r.ToolsAndModels == nil && r.ChatsAndMessages == nil
}

type Engine struct {
	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Run decodes the archive once and computes every view concurrently.
// The only error it returns is a cancelled context.
func (e *Engine) Run(ctx context.Context, files *archive.Collection, opts Options) (*Report, error) {
	opts = opts.normalized()
	log := e.log.With(zap.String("run", uuid.NewString()), zap.Int("year", opts.Year))
	log.Debug("engine run started", zap.Int("files", files.Len()))

	convs := LoadYear(files, opts, log)
	report := &Report{Year: opts.Year}

	g, ctx := errgroup.WithContext(ctx)
	reduce := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	reduce(func() { report.FirstConvo = FirstConversation(convs, opts) })
	reduce(func() { report.DaysActive = DaysActive(convs, opts) })
	reduce(func() { report.TimeOfDay = TimeOfDay(convs, opts) })
	reduce(func() { report.ToolsAndModels = ToolsAndModels(convs, opts) })
	reduce(func() { report.ChatsAndMessages = ChatsAndMessages(convs, opts) })
	reduce(func() { report.Generations = Generations(files, opts, log) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Finale = Finale(report.ChatsAndMessages, report.DaysActive, report.TimeOfDay, report.Generations)
	log.Info("engine run finished",
		zap.Int("conversations", len(convs)),
		zap.Bool("empty", report.Empty()))
	return report, nil
}

// The FromFiles variants run one aggregator end to end: locate, decode,
// year-filter, reduce.

func (e *Engine) FirstConversationFromFiles(files *archive.Collection, opts Options) *FirstConversationData {
	return FirstConversation(LoadYear(files, opts, e.log), opts)
}

func (e *Engine) DaysActiveFromFiles(files *archive.Collection, opts Options) *DaysActiveData {
	return DaysActive(LoadYear(files, opts, e.log), opts)
}

func (e *Engine) TimeOfDayFromFiles(files *archive.Collection, opts Options) *TimeOfDayData {
	return TimeOfDay(LoadYear(files, opts, e.log), opts)
}

func (e *Engine) ToolsAndModelsFromFiles(files *archive.Collection, opts Options) *ToolsAndModelsData {
	return ToolsAndModels(LoadYear(files, opts, e.log), opts)
}

func (e *Engine) GenerationsFromFiles(files *archive.Collection, opts Options) *GenerationsData {
	return Generations(files, opts, e.log)
}

func (e *Engine) ChatsAndMessagesFromFiles(files *archive.Collection, opts Options) *ChatsAndMessagesData {
	return ChatsAndMessages(LoadYear(files, opts, e.log), opts)
}

// Conversations exposes the shared load step for callers that need the raw
// filtered conversations (search index, previews).
func (e *Engine) Conversations(files *archive.Collection, opts Options) []parse.Conversation {
	return LoadYear(files, opts, e.log)
}
