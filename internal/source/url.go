package source

import (
	"regexp"
	"strings"
)

var (
	tiktokVideoRe  = regexp.MustCompile(`/video/(\d+)`)
	youtubeVideoRe = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
	handleRe       = regexp.MustCompile(`@([^/?]+)`)
	channelPathRe  = regexp.MustCompile(`/(?:channel|c|user)/([^/?]+)`)
	unsafeCharsRe  = regexp.MustCompile(`[^\w\s-]`)
)

// IsTikTokURL reports whether the URL belongs to TikTok
func IsTikTokURL(url string) bool {
	return strings.Contains(strings.ToLower(url), "tiktok.com")
}

// IsYouTubeURL reports whether the URL belongs to YouTube
func IsYouTubeURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be")
}

// IsSupportedURL reports whether the URL belongs to a supported platform
func IsSupportedURL(url string) bool {
	return IsTikTokURL(url) || IsYouTubeURL(url)
}

// IsVideoURL reports whether the URL points at a single video rather than
// a channel or profile page.
func IsVideoURL(url string) bool {
	if IsTikTokURL(url) {
		return strings.Contains(url, "/video/")
	}
	if IsYouTubeURL(url) {
		return strings.Contains(url, "watch?v=") ||
			strings.Contains(url, "youtu.be/") ||
			strings.Contains(url, "/shorts/")
	}
	return false
}

// ExtractVideoID extracts the stable video ID from a video URL. The same
// physical video always yields the same ID. Returns "" when the URL does
// not contain a recognizable ID.
func ExtractVideoID(url string) string {
	if IsTikTokURL(url) {
		if m := tiktokVideoRe.FindStringSubmatch(url); m != nil {
			return m[1]
		}
		return ""
	}
	if IsYouTubeURL(url) {
		if m := youtubeVideoRe.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// ChannelName extracts a human-readable channel name from a channel URL.
// Falls back to "unknown_channel" when nothing matches.
func ChannelName(channelURL string) string {
	if m := handleRe.FindStringSubmatch(channelURL); m != nil {
		return m[1]
	}
	if IsYouTubeURL(channelURL) {
		if m := channelPathRe.FindStringSubmatch(channelURL); m != nil {
			return m[1]
		}
	}
	return "unknown_channel"
}

// CleanChannelName normalizes a channel name into a directory-safe slug
func CleanChannelName(name string) string {
	cleaned := unsafeCharsRe.ReplaceAllString(name, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	cleaned = strings.ToLower(cleaned)
	if cleaned == "" {
		return "unknown_channel"
	}
	return cleaned
}
