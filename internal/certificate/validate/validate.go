// Package validate sanitizes and bounds-checks certificate issuance input.
//
// Text fields are filtered against a character allow-list rather than
// rejected wholesale: disallowed runes are dropped and the remainder kept,
// so a title with a stray control character still issues. A field is only
// rejected when it is empty after filtering or over its length cap before
// filtering.
package validate

import (
	"strings"

	dErrors "originstamp/pkg/domain-errors"
	pstrings "originstamp/pkg/platform/strings"

	"originstamp/internal/certificate/models"
)

const (
	MaxSessionIDLen   = 100
	MaxUsernameLen    = 50
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxToolNameLen    = 50
	MaxTools          = 20
	MaxPhotoCount     = 100
	MaxDurationMins   = 525600 // one year
)

var allowedFormats = map[string]struct{}{
	"PNG": {}, "JPG": {}, "JPEG": {}, "GIF": {},
	"WEBP": {}, "TIFF": {}, "BMP": {}, "SVG": {},
}

// Sanitize drops every rune outside the allow-list: letters, digits,
// whitespace and common punctuation. The result is trimmed.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\t':
		return true
	}
	return strings.ContainsRune(`.,-_!?()'"&:;`, r)
}

// IssueRequest checks every field of the request and returns it with text
// fields sanitized and the file format normalized to upper case. The input
// is not modified.
func IssueRequest(req models.IssueRequest) (models.IssueRequest, error) {
	if req.SessionID == "" || len(req.SessionID) > MaxSessionIDLen {
		return req, dErrors.Newf(dErrors.CodeValidation, "session_id must be 1..%d characters", MaxSessionIDLen)
	}
	if req.Username == "" || len(req.Username) > MaxUsernameLen {
		return req, dErrors.Newf(dErrors.CodeValidation, "username must be 1..%d characters", MaxUsernameLen)
	}

	if len(req.Title) > MaxTitleLen {
		return req, dErrors.Newf(dErrors.CodeValidation, "title exceeds %d characters", MaxTitleLen)
	}
	req.Title = Sanitize(req.Title)
	if req.Title == "" {
		return req, dErrors.New(dErrors.CodeValidation, "title is empty after sanitization")
	}

	if len(req.Description) > MaxDescriptionLen {
		return req, dErrors.Newf(dErrors.CodeValidation, "description exceeds %d characters", MaxDescriptionLen)
	}
	req.Description = Sanitize(req.Description)
	if req.Description == "" {
		return req, dErrors.New(dErrors.CodeValidation, "description is empty after sanitization")
	}

	if req.PhotoCount < 1 || req.PhotoCount > MaxPhotoCount {
		return req, dErrors.Newf(dErrors.CodeValidation, "photo_count must be 1..%d", MaxPhotoCount)
	}
	if req.CreationDurationMinutes < 1 || req.CreationDurationMinutes > MaxDurationMins {
		return req, dErrors.Newf(dErrors.CodeValidation, "creation_duration_minutes must be 1..%d", MaxDurationMins)
	}

	format := strings.ToUpper(strings.TrimSpace(req.FileFormat))
	if _, ok := allowedFormats[format]; !ok {
		return req, dErrors.Newf(dErrors.CodeValidation, "unsupported file format %q", req.FileFormat)
	}
	req.FileFormat = format

	// Duplicate tool names would repeat verbatim in the NFT attribute list,
	// so the list is deduped before the bounds check.
	deduped := pstrings.DedupeAndTrim(req.CreationTools)
	if len(deduped) < 1 || len(deduped) > MaxTools {
		return req, dErrors.Newf(dErrors.CodeValidation, "creation_tools must list 1..%d entries", MaxTools)
	}
	tools := make([]string, 0, len(deduped))
	for _, tool := range deduped {
		if len(tool) > MaxToolNameLen {
			return req, dErrors.Newf(dErrors.CodeValidation, "tool name exceeds %d characters", MaxToolNameLen)
		}
		tool = Sanitize(tool)
		if tool == "" {
			return req, dErrors.New(dErrors.CodeValidation, "tool name is empty after sanitization")
		}
		tools = append(tools, tool)
	}
	req.CreationTools = tools

	return req, nil
}
