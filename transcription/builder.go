package transcription

import (
	"strings"

	"github.com/kbukum/gladiaflow/util"
)

// BuildPayload maps audioURL and opts onto a submission body. Each feature
// is copied only when set; nested configs are attached only when their
// feature is enabled and has something to configure.
func BuildPayload(audioURL string, opts FeatureOptions) SubmissionPayload {
	p := SubmissionPayload{
		AudioURL:               audioURL,
		ContextPrompt:          nonEmpty(opts.ContextPrompt),
		CustomVocabulary:       cleanList(opts.CustomVocabulary),
		DetectLanguage:         opts.DetectLanguage,
		Language:               nonEmpty(opts.Language),
		EnableCodeSwitching:    opts.EnableCodeSwitching,
		Diarization:            opts.Diarization,
		Subtitles:              opts.Subtitles,
		Translation:            opts.Translation,
		Summarization:          opts.Summarization,
		SentimentAnalysis:      opts.SentimentAnalysis,
		NamedEntityRecognition: opts.NamedEntityRecognition,
	}

	if util.Deref(opts.Diarization) && (opts.MinSpeakers > 0 || opts.MaxSpeakers > 0) {
		p.DiarizationConfig = &DiarizationConfig{
			MinSpeakers: opts.MinSpeakers,
			MaxSpeakers: opts.MaxSpeakers,
		}
	}

	if util.Deref(opts.Subtitles) {
		if formats := uniqueFormats(opts.SubtitleFormats); len(formats) > 0 {
			p.SubtitlesConfig = &SubtitlesConfig{Formats: formats}
		}
	}

	if util.Deref(opts.Translation) {
		if langs := cleanList(opts.TargetLanguages); len(langs) > 0 {
			p.TranslationConfig = &TranslationConfig{TargetLanguages: langs}
		}
	}

	return p
}

// SplitList splits a comma-separated value, trims each entry and drops
// empty ones. It returns nil when nothing is left.
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(values []string) []string {
	out := util.Filter(util.Map(values, strings.TrimSpace), func(v string) bool { return v != "" })
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func uniqueFormats(formats []SubtitleFormat) []SubtitleFormat {
	var out []SubtitleFormat
	for _, f := range formats {
		if f != "" && !util.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
