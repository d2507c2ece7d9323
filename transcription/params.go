package transcription

import (
	"time"

	"github.com/kbukum/gladiaflow/util"
	"github.com/kbukum/gladiaflow/validation"
)

// Supported resource/operation pair and audio sources.
const (
	ResourceTranscription = "transcription"
	OperationTranscribe   = "transcribe"

	AudioSourceURL    = "url"
	AudioSourceBinary = "binaryData"

	DefaultBinaryPropertyName = "data"
)

// MaxPollingSeconds bounds pollingInterval and pollingTimeout; larger values
// would overflow time.Duration.
const MaxPollingSeconds = 1_000_000_000

// Params are the parameters of one batch item, decoded from the host's
// item document.
type Params struct {
	Resource           string  `json:"resource" yaml:"resource" validate:"oneof=transcription"`
	Operation          string  `json:"operation" yaml:"operation" validate:"oneof=transcribe"`
	AudioSource        string  `json:"audioSource" yaml:"audioSource" validate:"oneof=url binaryData"`
	AudioURL           string  `json:"audioUrl,omitempty" yaml:"audioUrl" validate:"omitempty,url"`
	BinaryPropertyName string  `json:"binaryPropertyName,omitempty" yaml:"binaryPropertyName"`
	WaitForCompletion  *bool   `json:"waitForCompletion,omitempty" yaml:"waitForCompletion"`
	Options            Options `json:"options" yaml:"options"`
}

// Options are the optional features and polling settings of an item.
// Polling values are in seconds.
type Options struct {
	ContextPrompt              string   `json:"context_prompt,omitempty" yaml:"context_prompt"`
	CustomVocabulary           string   `json:"custom_vocabulary,omitempty" yaml:"custom_vocabulary"`
	DetectLanguage             *bool    `json:"detect_language,omitempty" yaml:"detect_language"`
	Diarization                *bool    `json:"diarization,omitempty" yaml:"diarization"`
	DiarizationMinSpeakers     int      `json:"diarization_min_speakers,omitempty" yaml:"diarization_min_speakers" validate:"gte=0"`
	DiarizationMaxSpeakers     int      `json:"diarization_max_speakers,omitempty" yaml:"diarization_max_speakers" validate:"gte=0"`
	EnableCodeSwitching        *bool    `json:"enable_code_switching,omitempty" yaml:"enable_code_switching"`
	Language                   string   `json:"language,omitempty" yaml:"language"`
	NamedEntityRecognition     *bool    `json:"named_entity_recognition,omitempty" yaml:"named_entity_recognition"`
	PollingInterval            *float64 `json:"pollingInterval,omitempty" yaml:"pollingInterval" validate:"omitempty,gte=0,lte=1000000000"`
	PollingTimeout             *float64 `json:"pollingTimeout,omitempty" yaml:"pollingTimeout" validate:"omitempty,gte=0,lte=1000000000"`
	SentimentAnalysis          *bool    `json:"sentiment_analysis,omitempty" yaml:"sentiment_analysis"`
	Subtitles                  *bool    `json:"subtitles,omitempty" yaml:"subtitles"`
	SubtitlesFormats           []string `json:"subtitles_formats,omitempty" yaml:"subtitles_formats" validate:"omitempty,dive,oneof=srt vtt"`
	Summarization              *bool    `json:"summarization,omitempty" yaml:"summarization"`
	Translation                *bool    `json:"translation,omitempty" yaml:"translation"`
	TranslationTargetLanguages string   `json:"translation_target_languages,omitempty" yaml:"translation_target_languages"`
}

// ApplyDefaults fills in the host defaults for unset parameters.
func (p *Params) ApplyDefaults() {
	if p.Resource == "" {
		p.Resource = ResourceTranscription
	}
	if p.Operation == "" {
		p.Operation = OperationTranscribe
	}
	if p.AudioSource == "" {
		p.AudioSource = AudioSourceURL
	}
	if p.BinaryPropertyName == "" {
		p.BinaryPropertyName = DefaultBinaryPropertyName
	}
	if p.WaitForCompletion == nil {
		p.WaitForCompletion = util.Ptr(true)
	}
}

// Validate checks the struct tags and the URL requirement of the url
// audio source.
func (p *Params) Validate() error {
	if err := validation.Validate(p); err != nil {
		return err
	}
	v := validation.New()
	if p.AudioSource == AudioSourceURL {
		v.Required("audioUrl", p.AudioURL)
	}
	return v.Validate()
}

// FeatureOptions converts the item options into builder input.
func (p *Params) FeatureOptions() FeatureOptions {
	o := p.Options
	return FeatureOptions{
		ContextPrompt:          optionalString(o.ContextPrompt),
		CustomVocabulary:       SplitList(o.CustomVocabulary),
		DetectLanguage:         o.DetectLanguage,
		Language:               optionalString(o.Language),
		EnableCodeSwitching:    o.EnableCodeSwitching,
		Diarization:            o.Diarization,
		MinSpeakers:            positive(o.DiarizationMinSpeakers),
		MaxSpeakers:            positive(o.DiarizationMaxSpeakers),
		Subtitles:              o.Subtitles,
		SubtitleFormats:        util.Map(o.SubtitlesFormats, func(s string) SubtitleFormat { return SubtitleFormat(s) }),
		Translation:            o.Translation,
		TargetLanguages:        SplitList(o.TranslationTargetLanguages),
		Summarization:          o.Summarization,
		SentimentAnalysis:      o.SentimentAnalysis,
		NamedEntityRecognition: o.NamedEntityRecognition,
	}
}

// PollPolicy returns the item's polling settings, falling back to defaults
// for unset values.
func (p *Params) PollPolicy(defaults PollPolicy) PollPolicy {
	return PollPolicy{
		Interval: secondsOr(p.Options.PollingInterval, defaults.Interval),
		Timeout:  secondsOr(p.Options.PollingTimeout, defaults.Timeout),
	}
}

// secondsOr converts seconds to a Duration clamped to [0, MaxPollingSeconds].
func secondsOr(seconds *float64, def time.Duration) time.Duration {
	if seconds == nil {
		return def
	}
	s := min(max(*seconds, 0), MaxPollingSeconds)
	return time.Duration(s * float64(time.Second))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func positive(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}
