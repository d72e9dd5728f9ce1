package iemocap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
)

const (
	// Name is the registry name of the corpus.
	Name = "IEMOCAP"
	// FieldSession names the session directory in log records.
	FieldSession = "session"
)

// DefaultEmotions merges excited into happy, the usual four-class setup.
var DefaultEmotions = emotion.MustMap(
	emotion.Entry{Code: emotion.Angry, Label: 0},
	emotion.Entry{Code: emotion.Sad, Label: 1},
	emotion.Entry{Code: emotion.Happy, Label: 2},
	emotion.Entry{Code: emotion.Excited, Label: 2},
	emotion.Entry{Code: emotion.Neutral, Label: 3},
)

// Corpus enumerates an IEMOCAP root.
type Corpus struct {
	root            string
	emotions        emotion.Map
	includeScripted bool
	logger          *slog.Logger
}

var _ corpus.Corpus = (*Corpus)(nil)

// New builds the pipeline. Only improvised conversations are read unless
// corpus.WithIncludeScripted(true) is passed.
func New(root string, opts ...corpus.Option) *Corpus {
	o := corpus.Apply(DefaultEmotions, opts)
	return &Corpus{
		root:            root,
		emotions:        o.Emotions,
		includeScripted: o.IncludeScripted,
		logger:          logging.NewComponentLogger(o.Logger, "iemocap"),
	}
}

func (c *Corpus) Name() string { return Name }

func (c *Corpus) Root() string { return c.root }

func (c *Corpus) Emotions() emotion.Map { return c.emotions }

func (c *Corpus) Classes() emotion.Legend { return emotion.BuildLegend(c.emotions, nil) }

// Files walks every session and returns samples keyed by session and gender.
// Damaged conversations (no label file, unreadable audio folder, utterances
// without a label entry) are skipped with a warning.
func (c *Corpus) Files(ctx context.Context) (*corpus.Mapping, error) {
	sessions, err := corpus.ReadDir(c.root, corpus.Dirs)
	if err != nil {
		return nil, fmt.Errorf("iemocap: read root: %w", err)
	}

	mapping := corpus.NewMapping()
	for _, entry := range sessions {
		session := entry.Name()
		if !IsSession(session) {
			continue
		}
		if err := c.readSession(ctx, session, mapping); err != nil {
			return nil, err
		}
	}
	corpus.LogSummary(c.logger, mapping)
	return mapping, nil
}

func (c *Corpus) readSession(ctx context.Context, session string, mapping *corpus.Mapping) error {
	wavDir := filepath.Join(c.root, session, filepath.FromSlash(wavSubdir))
	labelDir := filepath.Join(c.root, session, filepath.FromSlash(labelSubdir))

	conversations, err := corpus.ReadDir(wavDir, corpus.Dirs)
	if err != nil {
		logging.WarnWithContext(c.logger, "session audio folder unreadable", "iemocap_session_unreadable",
			logging.String(FieldSession, session),
			logging.String(logging.FieldPath, wavDir),
			logging.Error(err),
		)
		return nil
	}

	for _, entry := range conversations {
		if err := ctx.Err(); err != nil {
			return err
		}
		conversation := entry.Name()
		if !c.includeScripted && !IsImprovised(conversation) {
			continue
		}
		c.readConversation(session, filepath.Join(wavDir, conversation), filepath.Join(labelDir, conversation+labelExt), mapping)
	}
	return nil
}

func (c *Corpus) readConversation(session, conversationDir, labelPath string, mapping *corpus.Mapping) {
	labels, err := ReadEvaluation(labelPath)
	if err != nil {
		logging.WarnWithContext(c.logger, "label file unreadable", "iemocap_label_file_missing",
			logging.String(logging.FieldPath, labelPath),
			logging.Error(err),
		)
		return
	}

	wavs, err := corpus.ReadDir(conversationDir, corpus.WavFiles)
	if err != nil {
		logging.WarnWithContext(c.logger, "conversation folder unreadable", "iemocap_conversation_unreadable",
			logging.String(logging.FieldPath, conversationDir),
			logging.Error(err),
		)
		return
	}

	for _, wav := range wavs {
		name := wav.Name()
		path := filepath.Join(conversationDir, name)
		raw, ok := labels[corpus.Stem(name)]
		if !ok {
			logging.WarnWithContext(c.logger, "utterance has no label entry", "iemocap_label_missing",
				logging.String(logging.FieldPath, path),
				logging.String(logging.FieldErrorHint, "check the conversation's EmoEvaluation file"),
			)
			continue
		}
		code := raw
		if canonical, ok := emotion.Canonical(raw); ok {
			code = canonical
		}
		label, ok := c.emotions.Lookup(code)
		if !ok {
			c.logger.Debug("emotion filtered", logging.String(logging.FieldPath, path), logging.String("emotion", raw))
			continue
		}
		gender, ok := GenderOf(name)
		if !ok {
			logging.WarnWithContext(c.logger, "utterance name carries no gender letter", "iemocap_gender_unknown",
				logging.String(logging.FieldPath, path),
			)
			continue
		}
		mapping.Add(SpeakerID(session, gender), corpus.Sample{Path: path, Label: label})
	}
}
