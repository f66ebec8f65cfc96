package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "labeled fence",
			reply: "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!",
			want:  `{"a": 1}`,
		},
		{
			name:  "unlabeled fence",
			reply: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "labeled preferred over unlabeled",
			reply: "```\nnot json\n```\n```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "no fence falls back to whole reply",
			reply: "  {\"a\": 1}  ",
			want:  `{"a": 1}`,
		},
		{
			name:  "plain prose",
			reply: "I had a great trip.",
			want:  "I had a great trip.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.reply); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON_FencedAndBareParseIdentically(t *testing.T) {
	type out struct {
		Title string `json:"title"`
	}
	var bare, fenced out
	if err := DecodeJSON(`{"title": "Kyoto"}`, &bare); err != nil {
		t.Fatalf("bare decode: %v", err)
	}
	if err := DecodeJSON("```json\n{\"title\": \"Kyoto\"}\n```", &fenced); err != nil {
		t.Fatalf("fenced decode: %v", err)
	}
	if bare != fenced {
		t.Errorf("fenced result %v != bare result %v", fenced, bare)
	}
}

func TestDecodeJSON_InvalidPayload(t *testing.T) {
	var v map[string]any
	if err := DecodeJSON("this is not structured data", &v); err == nil {
		t.Error("expected decode error for prose reply")
	}
}
