package transcription

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kbukum/gladiaflow/util"
)

func encode(t *testing.T, p SubmissionPayload) string {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return string(b)
}

func TestBuildPayload(t *testing.T) {
	const u = "https://cdn.example.com/a.mp3"

	tests := []struct {
		name string
		opts FeatureOptions
		want string
	}{
		{
			name: "no options",
			want: `{"audio_url":"https://cdn.example.com/a.mp3"}`,
		},
		{
			name: "diarization without speaker counts",
			opts: FeatureOptions{Diarization: util.Ptr(true)},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","diarization":true}`,
		},
		{
			name: "diarization with speaker counts",
			opts: FeatureOptions{Diarization: util.Ptr(true), MinSpeakers: 2, MaxSpeakers: 5},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","diarization":true,"diarization_config":{"min_speakers":2,"max_speakers":5}}`,
		},
		{
			name: "diarization with max only",
			opts: FeatureOptions{Diarization: util.Ptr(true), MaxSpeakers: 3},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","diarization":true,"diarization_config":{"max_speakers":3}}`,
		},
		{
			name: "diarization disabled ignores counts",
			opts: FeatureOptions{Diarization: util.Ptr(false), MinSpeakers: 2},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","diarization":false}`,
		},
		{
			name: "speaker counts without diarization",
			opts: FeatureOptions{MinSpeakers: 2, MaxSpeakers: 5},
			want: `{"audio_url":"https://cdn.example.com/a.mp3"}`,
		},
		{
			name: "subtitles with formats",
			opts: FeatureOptions{Subtitles: util.Ptr(true), SubtitleFormats: []SubtitleFormat{SubtitleSRT, SubtitleVTT, SubtitleSRT}},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","subtitles":true,"subtitles_config":{"formats":["srt","vtt"]}}`,
		},
		{
			name: "subtitles without formats",
			opts: FeatureOptions{Subtitles: util.Ptr(true)},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","subtitles":true}`,
		},
		{
			name: "subtitles disabled ignores formats",
			opts: FeatureOptions{Subtitles: util.Ptr(false), SubtitleFormats: []SubtitleFormat{SubtitleSRT}},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","subtitles":false}`,
		},
		{
			name: "translation with languages",
			opts: FeatureOptions{Translation: util.Ptr(true), TargetLanguages: []string{" en", "fr ", ""}},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","translation":true,"translation_config":{"target_languages":["en","fr"]}}`,
		},
		{
			name: "translation with only blank languages",
			opts: FeatureOptions{Translation: util.Ptr(true), TargetLanguages: []string{" ", ""}},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","translation":true}`,
		},
		{
			name: "empty strings are omitted",
			opts: FeatureOptions{ContextPrompt: util.Ptr(""), Language: util.Ptr(""), CustomVocabulary: []string{" "}},
			want: `{"audio_url":"https://cdn.example.com/a.mp3"}`,
		},
		{
			name: "explicit false is kept",
			opts: FeatureOptions{
				DetectLanguage:         util.Ptr(false),
				EnableCodeSwitching:    util.Ptr(false),
				Summarization:          util.Ptr(false),
				SentimentAnalysis:      util.Ptr(false),
				NamedEntityRecognition: util.Ptr(false),
			},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","detect_language":false,"enable_code_switching":false,"summarization":false,"sentiment_analysis":false,"named_entity_recognition":false}`,
		},
		{
			name: "all scalar features",
			opts: FeatureOptions{
				ContextPrompt:          util.Ptr("support call"),
				CustomVocabulary:       []string{"Gladia", " n8n "},
				DetectLanguage:         util.Ptr(true),
				Language:               util.Ptr("en"),
				EnableCodeSwitching:    util.Ptr(true),
				Summarization:          util.Ptr(true),
				SentimentAnalysis:      util.Ptr(true),
				NamedEntityRecognition: util.Ptr(true),
			},
			want: `{"audio_url":"https://cdn.example.com/a.mp3","context_prompt":"support call","custom_vocabulary":["Gladia","n8n"],"detect_language":true,"language":"en","enable_code_switching":true,"summarization":true,"sentiment_analysis":true,"named_entity_recognition":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, BuildPayload(u, tt.opts)); got != tt.want {
				t.Errorf("BuildPayload()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestBuildPayload_Deterministic(t *testing.T) {
	opts := FeatureOptions{
		Diarization:      util.Ptr(true),
		MinSpeakers:      1,
		Translation:      util.Ptr(true),
		TargetLanguages:  []string{"de"},
		CustomVocabulary: []string{"a"},
	}
	first := encode(t, BuildPayload("u", opts))
	for range 5 {
		if got := encode(t, BuildPayload("u", opts)); got != first {
			t.Fatalf("BuildPayload not deterministic: %s vs %s", got, first)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a ,, ,b", []string{"a", "b"}},
		{"single", []string{"single"}},
		{"", nil},
		{"   ", nil},
		{" , ,", nil},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
