package stats

import (
	"errors"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"go.uber.org/zap"
)

// decodeArchive locates and decodes conversations.json. It returns nil when
// the file is missing or unreadable; the failure is logged, never returned.
func decodeArchive(files *archive.Collection, log *zap.Logger) []parse.Conversation {
	f, err := files.Conversations()
	if err != nil {
		log.Debug("conversations.json not found", zap.Int("files", files.Len()))
		return nil
	}

	rc, err := f.Open()
	if err != nil {
		log.Warn("open conversations failed", zap.String("path", f.Path), zap.Error(err))
		return nil
	}
	defer rc.Close()

	convs, err := parse.DecodeConversations(rc)
	if err != nil {
		var de *parse.DecodeError
		if errors.As(err, &de) {
			de.Path = f.Path
		}
		log.Warn("decode conversations failed", zap.String("path", f.Path), zap.Error(err))
		return nil
	}
	log.Debug("decoded conversations", zap.String("path", f.Path), zap.Int("count", len(convs)))
	return convs
}

// LoadYear is the shared locate + decode + year-filter step. It returns nil
// when the archive has no usable conversations for the year.
func LoadYear(files *archive.Collection, opts Options, log *zap.Logger) []parse.Conversation {
	if log == nil {
		log = zap.NewNop()
	}
	convs := decodeArchive(files, log)
	if convs == nil {
		return nil
	}
	filtered := opts.Window().Filter(convs)
	if len(filtered) == 0 {
		log.Debug("no conversations in year", zap.Int("year", opts.normalized().Year), zap.Int("decoded", len(convs)))
		return nil
	}
	return filtered
}
