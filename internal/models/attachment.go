package models

import (
	"regexp"
	"strings"
)

// Attachment note encoding. A share lands in the conversation as a plain
// text message of the form "Shared photo: a.jpg, b.jpg" (or "Shared videos",
// "Shared document: cv.pdf"). The note is what triggers the best-effort
// notification to the other participant.

// AttachmentNote is the parsed form of an attachment text message.
type AttachmentNote struct {
	Type  string   // "photo", "video" or "document"
	Files []string // original file names, may be empty
}

var attachmentNoteRe = regexp.MustCompile(`(?i)^Shared\s+(photo|video|document)s?\s*(?::\s*(.+))?$`)

// ParseAttachmentNote reports whether text is an attachment note and, if so,
// its type and file names. Returns nil for plain chat text.
func ParseAttachmentNote(text string) *AttachmentNote {
	m := attachmentNoteRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	note := &AttachmentNote{Type: strings.ToLower(m[1])}
	if m[2] != "" {
		for _, f := range strings.Split(m[2], ",") {
			if f = strings.TrimSpace(f); f != "" {
				note.Files = append(note.Files, f)
			}
		}
	}
	return note
}

// FormatAttachmentNote renders the text body for an attachment share.
// The plural "s" follows the file count, as the web client writes it.
func FormatAttachmentNote(attachmentType string, files []string) string {
	var b strings.Builder
	b.WriteString("Shared ")
	b.WriteString(strings.ToLower(attachmentType))
	if len(files) > 1 {
		b.WriteString("s")
	}
	if len(files) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(files, ", "))
	}
	return b.String()
}
