package utils

import "regexp"

var driveFileRe = regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)`)

// NormalizeDriveLink rewrites a Google Drive "file/view" share link into its
// direct-content form. Anything that does not match the share-link pattern,
// malformed input included, passes through unchanged.
func NormalizeDriveLink(enlace string) string {
	m := driveFileRe.FindStringSubmatch(enlace)
	if m == nil {
		return enlace
	}
	return "https://drive.google.com/uc?id=" + m[1]
}
