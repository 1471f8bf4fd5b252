// Package enex reads Evernote export (.enex) files. Notes are decoded
// one element at a time off the XML token stream, so large exports are
// never held in memory, and a broken note never stops the stream.
package enex

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	stdhtml "html"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

// Note is a parsed Evernote note. ContentHTML is sanitized for the
// extraction engine; RawContentHTML keeps the unwrapped markup intact,
// including the script elements web clippers embed, for capabilities
// that read structured page data.
type Note struct {
	Title          string
	ContentHTML    string
	RawContentHTML string
	Created        time.Time
	Updated        time.Time // zero when absent
	Tags           []string
	SourceURL      string
	Resources      []Resource
}

// Resource is an embedded attachment, decoded from base64. MD5 matches
// the hash Evernote uses in <en-media> references.
type Resource struct {
	Data     []byte
	MimeType string
	Filename string
	MD5      string
}

// imageMimeTypes are the attachment types treated as recipe images.
var imageMimeTypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {},
	"image/gif": {}, "image/webp": {}, "image/bmp": {},
}

// FirstImage returns the first image attachment of a note, or nil.
func (n *Note) FirstImage() *Resource {
	for i := range n.Resources {
		if _, ok := imageMimeTypes[strings.ToLower(n.Resources[i].MimeType)]; ok {
			return &n.Resources[i]
		}
	}
	return nil
}

// xmlNote mirrors the ENEX <note> element layout.
type xmlNote struct {
	Title      string   `xml:"title"`
	Content    string   `xml:"content"`
	Created    string   `xml:"created"`
	Updated    string   `xml:"updated"`
	Tags       []string `xml:"tag"`
	Attributes struct {
		SourceURL string `xml:"source-url"`
	} `xml:"note-attributes"`
	Resources []xmlResource `xml:"resource"`
}

type xmlResource struct {
	Data       string `xml:"data"`
	Mime       string `xml:"mime"`
	Attributes struct {
		FileName string `xml:"file-name"`
	} `xml:"resource-attributes"`
}

// sanitizer strips scripts and other unsafe markup from note content
// before it reaches the extraction engine.
var sanitizer = bluemonday.UGCPolicy()

var (
	xmlDeclRe = regexp.MustCompile(`<\?xml[^?]*\?>`)
	doctypeRe = regexp.MustCompile(`<!DOCTYPE[^>]*>`)
	enNoteRe  = regexp.MustCompile(`(?is)<en-note[^>]*>(.*)</en-note>`)
)

// Parse streams notes from an ENEX file, invoking fn for each one.
// Individual notes that fail to decode are logged and skipped; a non-nil
// error from fn aborts the stream.
func Parse(path string, fn func(Note) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open enex: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read enex token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "note" {
			continue
		}

		var raw xmlNote
		if err := dec.DecodeElement(&raw, &start); err != nil {
			log.Error().Err(err).Str("file", path).Msg("failed to decode note, skipping")
			continue
		}
		if err := fn(buildNote(raw)); err != nil {
			return err
		}
	}
}

// CountNotes counts <note> elements without fully decoding them.
func CountNotes(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open enex: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	dec.Strict = false
	count := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("read enex token: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "note" {
			count++
			if err := dec.Skip(); err != nil {
				return count, fmt.Errorf("skip note: %w", err)
			}
		}
	}
}

func buildNote(raw xmlNote) Note {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = "Untitled Note"
		log.Warn().Msg("note missing title, using fallback")
	}

	created, err := ParseTimestamp(raw.Created)
	if err != nil {
		log.Warn().Str("note", title).Str("value", raw.Created).Msg("invalid created date, using current time")
		created = time.Now().UTC()
	}
	// Updated is optional; parse errors leave it zero.
	updated, _ := ParseTimestamp(raw.Updated)

	tags := make([]string, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	content := unwrapContent(raw.Content)
	return Note{
		Title:          title,
		ContentHTML:    sanitizer.Sanitize(content),
		RawContentHTML: content,
		Created:        created,
		Updated:        updated,
		Tags:           tags,
		SourceURL:      strings.TrimSpace(raw.Attributes.SourceURL),
		Resources:      buildResources(title, raw.Resources),
	}
}

func buildResources(title string, raws []xmlResource) []Resource {
	var resources []Resource
	for _, r := range raws {
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(r.Data), ""))
		if err != nil {
			log.Warn().Err(err).Str("note", title).Msg("failed to decode resource data, skipping")
			continue
		}
		if len(data) == 0 {
			continue
		}
		mime := strings.TrimSpace(r.Mime)
		if mime == "" {
			mime = "application/octet-stream"
		}
		sum := md5.Sum(data)
		resources = append(resources, Resource{
			Data:     data,
			MimeType: mime,
			Filename: strings.TrimSpace(r.Attributes.FileName),
			MD5:      hex.EncodeToString(sum[:]),
		})
	}
	return resources
}

// DecodeContent extracts clean HTML from the CDATA payload of a content
// element: entities unescaped, XML declaration and DOCTYPE removed, the
// <en-note> wrapper unwrapped, and the result sanitized.
func DecodeContent(cdata string) string {
	return sanitizer.Sanitize(unwrapContent(cdata))
}

// unwrapContent unwraps the content payload without sanitizing, so the
// markup clippers embed (structured-data scripts included) survives for
// the scraper capabilities.
func unwrapContent(cdata string) string {
	if cdata == "" {
		return ""
	}
	content := stdhtml.UnescapeString(cdata)
	content = xmlDeclRe.ReplaceAllString(content, "")
	content = doctypeRe.ReplaceAllString(content, "")
	if m := enNoteRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	return strings.TrimSpace(content)
}

// ParseTimestamp reads Evernote's compact datetime form
// ("20240101T120000Z"), tolerating the dashed ISO variant.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if strings.Contains(s, "-") {
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, ":", "")
	}
	s = strings.TrimSuffix(s, "Z")
	t, err := time.Parse("20060102T150405", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse evernote timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
