package constants

import "strings"

// File formats accepted by the upload/ingest path.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedExtensions holds the allowed file extensions for receipt uploads.
// Anything else is rejected before OCR runs.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// ImageConfidenceThreshold is the OCR confidence below which a saved
// receipt is flagged for review.
const ImageConfidenceThreshold = 0.7

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to a coarse format, or "" if the
// extension is not allowed.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png":
		return IMAGE
	default:
		return ""
	}
}
