package transcription

import (
	"encoding/json"
	"fmt"
	"time"
)

// AudioReference is the audio an item transcribes: either a URLAudio or
// an UploadAudio. Only those two types implement it.
type AudioReference interface {
	isAudioReference()
}

// URLAudio is audio already reachable by the service.
type URLAudio struct {
	URL string
}

// UploadAudio is raw audio that must be uploaded before submission.
type UploadAudio struct {
	Data     []byte
	FileName string
	MimeType string
}

func (URLAudio) isAudioReference()    {}
func (UploadAudio) isAudioReference() {}

// SubtitleFormat is a subtitle file format the service can render.
type SubtitleFormat string

// Supported subtitle formats.
const (
	SubtitleSRT SubtitleFormat = "srt"
	SubtitleVTT SubtitleFormat = "vtt"
)

// FeatureOptions are the optional processing features of a job. A nil
// pointer means "not set" and leaves the service default in place; it is
// distinct from an explicit false.
type FeatureOptions struct {
	ContextPrompt          *string
	CustomVocabulary       []string
	DetectLanguage         *bool
	Language               *string
	EnableCodeSwitching    *bool
	Diarization            *bool
	MinSpeakers            uint
	MaxSpeakers            uint
	Subtitles              *bool
	SubtitleFormats        []SubtitleFormat
	Translation            *bool
	TargetLanguages        []string
	Summarization          *bool
	SentimentAnalysis      *bool
	NamedEntityRecognition *bool
}

// SubmissionPayload is the request body of a transcription submission.
// Unset features are omitted from the encoded JSON.
type SubmissionPayload struct {
	AudioURL               string             `json:"audio_url"`
	ContextPrompt          *string            `json:"context_prompt,omitempty"`
	CustomVocabulary       []string           `json:"custom_vocabulary,omitempty"`
	DetectLanguage         *bool              `json:"detect_language,omitempty"`
	Language               *string            `json:"language,omitempty"`
	EnableCodeSwitching    *bool              `json:"enable_code_switching,omitempty"`
	Diarization            *bool              `json:"diarization,omitempty"`
	DiarizationConfig      *DiarizationConfig `json:"diarization_config,omitempty"`
	Subtitles              *bool              `json:"subtitles,omitempty"`
	SubtitlesConfig        *SubtitlesConfig   `json:"subtitles_config,omitempty"`
	Translation            *bool              `json:"translation,omitempty"`
	TranslationConfig      *TranslationConfig `json:"translation_config,omitempty"`
	Summarization          *bool              `json:"summarization,omitempty"`
	SentimentAnalysis      *bool              `json:"sentiment_analysis,omitempty"`
	NamedEntityRecognition *bool              `json:"named_entity_recognition,omitempty"`
}

// DiarizationConfig bounds the number of speakers. Zero values are omitted.
type DiarizationConfig struct {
	MinSpeakers uint `json:"min_speakers,omitempty"`
	MaxSpeakers uint `json:"max_speakers,omitempty"`
}

// SubtitlesConfig lists the subtitle formats to render.
type SubtitlesConfig struct {
	Formats []SubtitleFormat `json:"formats"`
}

// TranslationConfig lists the translation target languages.
type TranslationConfig struct {
	TargetLanguages []string `json:"target_languages"`
}

// StatusPathPrefix is joined with a job id to form the status endpoint.
const StatusPathPrefix = "/v2/transcription/"

// JobHandle identifies a submitted job.
type JobHandle struct {
	ID        string
	ResultURL string
}

// NewJobHandle reads the id and result_url fields of a submission response.
func NewJobHandle(resp map[string]any) JobHandle {
	return JobHandle{
		ID:        stringField(resp, "id"),
		ResultURL: stringField(resp, "result_url"),
	}
}

// Valid reports whether the handle can be polled.
func (h JobHandle) Valid() bool {
	return h.ID != "" || h.ResultURL != ""
}

// PollTarget returns the result URL when the service supplied one and the
// id-based status endpoint otherwise.
func (h JobHandle) PollTarget() string {
	if h.ResultURL != "" {
		return h.ResultURL
	}
	return StatusPathPrefix + h.ID
}

// PollState is the state of a job as seen by one status read.
type PollState int

const (
	// Processing covers every non-terminal status.
	Processing PollState = iota
	// Done means the job finished and the response is the result.
	Done
	// Failed means the service reported a terminal error.
	Failed
)

func (s PollState) String() string {
	switch s {
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "processing"
	}
}

// Service statuses that end the poll loop.
const (
	StatusDone  = "done"
	StatusError = "error"
)

const unknownError = "Unknown error"

// PollOutcome is the interpretation of one status read.
type PollOutcome struct {
	State PollState
	// Status is the raw status field.
	Status string
	// Payload is the full response, set when State is Done.
	Payload map[string]any
	// Message is the service error, set when State is Failed.
	Message string
}

// InterpretPoll classifies a status response.
func InterpretPoll(resp map[string]any) PollOutcome {
	status, _ := resp["status"].(string)
	switch status {
	case StatusDone:
		return PollOutcome{State: Done, Status: status, Payload: resp}
	case StatusError:
		return PollOutcome{State: Failed, Status: status, Message: failureMessage(resp)}
	default:
		return PollOutcome{State: Processing, Status: status}
	}
}

// failureMessage prefers error_message, then error. Non-string values are
// rendered as JSON.
func failureMessage(resp map[string]any) string {
	for _, key := range []string{"error_message", "error"} {
		v, ok := resp[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprint(v)
	}
	return unknownError
}

// Default poll policy values.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 600 * time.Second
)

// PollPolicy controls how long and how often a job is polled.
type PollPolicy struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultPollPolicy returns the 5s interval, 600s timeout policy.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: DefaultPollInterval, Timeout: DefaultPollTimeout}
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
