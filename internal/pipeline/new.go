package pipeline

import (
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/classnotes/internal/config"
	"github.com/nguyentantai21042004/classnotes/internal/drive"
	"github.com/nguyentantai21042004/classnotes/internal/history"
	"github.com/nguyentantai21042004/classnotes/internal/logger"
	"github.com/nguyentantai21042004/classnotes/internal/media"
	"github.com/nguyentantai21042004/classnotes/internal/notifier"
	"github.com/nguyentantai21042004/classnotes/internal/scraper"
	"github.com/nguyentantai21042004/classnotes/internal/summarizer"
	"github.com/nguyentantai21042004/classnotes/internal/transcriber"
)

// Deps are the collaborators of a Pipeline. Scraper may be nil when only
// RunLocal is used. Store and Locker may be nil to run without history.
type Deps struct {
	Scraper     scraper.Scraper
	Media       media.Media
	Transcriber transcriber.Transcriber
	Drive       drive.Drive
	Summarizer  summarizer.Summarizer
	Notifier    notifier.Notifier
	Store       history.Store
	Locker      history.Locker
	Logger      logger.Logger
}

// paths are resolved once from config and handed to each step.
type paths struct {
	audio      string
	fragments  string
	texts      string
	transcript string
	temp       string
}

type implPipeline struct {
	deps           Deps
	notes          []config.Note
	paths          paths
	segment        time.Duration
	rootFolderID   string
	exportDocx     bool
	abortOnNoClass bool
	noteInterval   time.Duration
	logger         logger.Logger
	now            func() time.Time
}

// New creates a Pipeline. notes must be in generation order (see config.LoadNotes).
func New(cfg *config.Config, notes []config.Note, deps Deps) Pipeline {
	segment := time.Duration(cfg.Fragment.SegmentSeconds) * time.Second
	if segment <= 0 {
		segment = media.DefaultSegment
	}

	return &implPipeline{
		deps:  deps,
		notes: notes,
		paths: paths{
			audio:      cfg.Paths.Audio,
			fragments:  cfg.Paths.Fragments,
			texts:      cfg.Paths.Texts,
			transcript: filepath.Join(cfg.Paths.Texts, "transcription.txt"),
			temp:       cfg.Paths.Temp,
		},
		segment:        segment,
		rootFolderID:   cfg.Drive.RootFolderID,
		exportDocx:     cfg.Drive.ExportDocx,
		abortOnNoClass: cfg.Pipeline.AbortOnNoClass,
		noteInterval:   cfg.Pipeline.NoteInterval,
		logger:         deps.Logger,
		now:            time.Now,
	}
}
