package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttachmentNote(t *testing.T) {
	note := ParseAttachmentNote("Shared photos: a.jpg, b.jpg")
	if assert.NotNil(t, note) {
		assert.Equal(t, "photo", note.Type)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, note.Files)
	}

	note = ParseAttachmentNote("Shared document: resume.pdf")
	if assert.NotNil(t, note) {
		assert.Equal(t, "document", note.Type)
		assert.Equal(t, []string{"resume.pdf"}, note.Files)
	}

	// Bare note without file names
	note = ParseAttachmentNote("Shared video")
	if assert.NotNil(t, note) {
		assert.Equal(t, "video", note.Type)
		assert.Empty(t, note.Files)
	}

	// Case-insensitive like the web client's matcher
	assert.NotNil(t, ParseAttachmentNote("shared PHOTO: x.png"))
}

func TestParseAttachmentNotePlainText(t *testing.T) {
	assert.Nil(t, ParseAttachmentNote("hello there"))
	assert.Nil(t, ParseAttachmentNote("I shared photos yesterday"))
	assert.Nil(t, ParseAttachmentNote("Shared thoughts: none"))
	assert.Nil(t, ParseAttachmentNote(""))
}

func TestFormatAttachmentNote(t *testing.T) {
	assert.Equal(t, "Shared photo: a.jpg", FormatAttachmentNote("photo", []string{"a.jpg"}))
	assert.Equal(t, "Shared photos: a.jpg, b.jpg", FormatAttachmentNote("Photo", []string{"a.jpg", "b.jpg"}))
	assert.Equal(t, "Shared document", FormatAttachmentNote("document", nil))
}

func TestFormatParseRoundTrip(t *testing.T) {
	text := FormatAttachmentNote("video", []string{"clip1.mp4", "clip2.mp4"})
	note := ParseAttachmentNote(text)
	if assert.NotNil(t, note) {
		assert.Equal(t, "video", note.Type)
		assert.Equal(t, []string{"clip1.mp4", "clip2.mp4"}, note.Files)
	}
}
