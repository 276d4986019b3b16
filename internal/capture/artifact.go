package capture

import "strings"

// Artifact is the finalized media file produced by a recording: the path on
// disk plus the MIME type the container was muxed as.
type Artifact struct {
	Path string
	MIME string
}

// Extension returns the file extension matching the artifact MIME type.
// Anything mp4-flavored maps to "mp4", everything else to "webm".
func (a Artifact) Extension() string {
	if strings.Contains(strings.ToLower(a.MIME), "mp4") {
		return "mp4"
	}
	return "webm"
}

// MIMEForContainer maps a container name to the MIME type recordings are
// tagged with.
func MIMEForContainer(container string) string {
	if strings.EqualFold(strings.TrimSpace(container), "mp4") {
		return "audio/mp4"
	}
	return "audio/webm"
}
