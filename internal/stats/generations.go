package stats

import (
	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"go.uber.org/zap"
)

// Generations counts generated images and Sora videos. It does not need
// conversations.json.
//
// Sora tasks whose created_at is missing or unparseable are counted toward
// the year. Archives with undated tasks from other years over-count.
func Generations(files *archive.Collection, opts Options, log *zap.Logger) *GenerationsData {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.normalized()

	images := files.GeneratedImages()
	data := &GenerationsData{
		ImageFiles: images,
		ImagePaths: imagePaths(images),
		ImageCount: len(images),
	}

	f, err := files.Sora()
	if err != nil {
		return data
	}
	rc, err := f.Open()
	if err != nil {
		log.Warn("open sora.json failed", zap.String("path", f.Path), zap.Error(err))
		return data
	}
	defer rc.Close()

	exp, err := parse.DecodeSora(rc)
	if err != nil {
		log.Warn("decode sora.json failed", zap.String("path", f.Path), zap.Error(err))
		return data
	}
	for _, task := range exp.Tasks {
		created, ok := task.Created(opts.Location)
		if !ok || created.Year() == opts.Year {
			data.SoraVideoCount++
		}
	}
	return data
}
