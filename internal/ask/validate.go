package ask

import (
	"fmt"
	"mime"
	"strings"
)

const (
	mediaTypeMarkdown = "text/markdown"
	mediaTypePlain    = "text/plain"
)

// validate applies the submission rules in order: question present, document
// present, media type on the allow-list, size under the ceiling. The declared
// media type is trusted, never sniffed from content; parameters such as
// charset are stripped before the allow-list comparison.
func (s *Service) validate(sub Submission) error {
	if strings.TrimSpace(sub.Question) == "" {
		return Validation("question is required")
	}
	if sub.Document.Filename == "" && len(sub.Document.Content) == 0 {
		return Validation("document file is required")
	}
	mediaType := sub.Document.MediaType
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}
	if mediaType != mediaTypeMarkdown && mediaType != mediaTypePlain {
		return Upload(fmt.Sprintf("unsupported media type %q (only text/markdown and text/plain allowed)", sub.Document.MediaType))
	}
	if int64(len(sub.Document.Content)) > s.maxUploadSize {
		return Upload(fmt.Sprintf("file too large (max %d bytes)", s.maxUploadSize))
	}
	return nil
}
