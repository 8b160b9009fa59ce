package gcsio

import (
	"testing"
)

func TestIsURI(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"gs://bucket/feed.csv", true},
		{"gs://bucket", true},
		{"/tmp/feed.csv", false},
		{"https://example.com/feed.csv", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsURI(tt.input); got != tt.want {
				t.Errorf("IsURI(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitURI(t *testing.T) {
	tests := []struct {
		input      string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://bucket/feed.csv", "bucket", "feed.csv", false},
		{"gs://bucket/a/b/feed.csv", "bucket", "a/b/feed.csv", false},
		{"gs://bucket", "", "", true},
		{"gs://bucket/", "", "", true},
		{"feed.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bucket, object, err := splitURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("splitURI(%q) = (%q, %q), want (%q, %q)", tt.input, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
