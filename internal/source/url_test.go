package source

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"tiktok video", "https://www.tiktok.com/@someuser/video/7123456789012345678", "7123456789012345678"},
		{"tiktok video with query", "https://www.tiktok.com/@someuser/video/7123456789012345678?lang=en", "7123456789012345678"},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"youtube shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"tiktok profile has no ID", "https://www.tiktok.com/@someuser", ""},
		{"unsupported platform", "https://vimeo.com/12345678", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.url); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestVideoIDStableAcrossRuns(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"
	first := ExtractVideoID(url)
	second := ExtractVideoID(url)
	if first == "" || first != second {
		t.Errorf("video ID not stable: %q vs %q", first, second)
	}
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.tiktok.com/@someuser/video/7123456789012345678", true},
		{"https://www.tiktok.com/@someuser", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/@somechannel", false},
		{"https://example.com/video/123", false},
	}

	for _, tt := range tests {
		if got := IsVideoURL(tt.url); got != tt.want {
			t.Errorf("IsVideoURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"tiktok handle", "https://www.tiktok.com/@someuser", "someuser"},
		{"youtube handle", "https://www.youtube.com/@SomeChannel", "SomeChannel"},
		{"youtube channel path", "https://www.youtube.com/channel/UCabc123", "UCabc123"},
		{"youtube user path", "https://www.youtube.com/user/olduser", "olduser"},
		{"no match", "https://www.youtube.com/", "unknown_channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelName(tt.url); got != tt.want {
				t.Errorf("ChannelName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestCleanChannelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Some Channel!", "some_channel"},
		{"UPPER", "upper"},
		{"dots.and.stars***", "dotsandstars"},
		{"", "unknown_channel"},
	}

	for _, tt := range tests {
		if got := CleanChannelName(tt.in); got != tt.want {
			t.Errorf("CleanChannelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
