// Package fs provides a file-based markdown archive of channel messages.
package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tgfeed"
	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header of an archived message.
type frontmatter struct {
	Channel string  `yaml:"channel"`
	Number  string  `yaml:"number"`
	Link    string  `yaml:"link"`
	Author  string  `yaml:"author"`
	Date    string  `yaml:"date"`
	Views   *string `yaml:"views,omitempty"`
	Voters  *string `yaml:"voters,omitempty"`
}

// MessagePath returns the archive path of a message relative to the base
// directory: <channel>/<number>.md.
// Returns EINVALID if either part is not a plain path segment.
func MessagePath(channelID, number string) (string, error) {
	for _, seg := range []string{channelID, number} {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `/\`) {
			return "", tgfeed.Errorf(tgfeed.EINVALID, "invalid path segment %q", seg)
		}
	}
	return filepath.Join(channelID, number+".md"), nil
}

// FormatMessage formats a message as markdown with YAML frontmatter.
func FormatMessage(channelID string, msg *tgfeed.Message) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Channel: channelID,
		Number:  msg.Number,
		Link:    msg.URL(channelID),
		Author:  msg.Author,
		Date:    msg.Date,
		Views:   msg.Views,
		Voters:  msg.Voters,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(RenderMarkdown(msg.Contents))
	return b.String(), nil
}

// Ensure Writer implements tgfeed.MessageWriter at compile time.
var _ tgfeed.MessageWriter = (*Writer)(nil)

// Writer writes messages as markdown files to a directory, one file per
// message. Existing files are replaced.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteMessages writes every message of the feed to disk along with a
// channel.yaml holding the channel header.
func (w *Writer) WriteMessages(ctx context.Context, feed *tgfeed.Feed) error {
	if _, err := MessagePath(feed.ChannelID, "channel"); err != nil {
		return err
	}

	dir := filepath.Join(w.baseDir, feed.ChannelID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var info bytes.Buffer
	if err := yaml.NewEncoder(&info).Encode(feed.Channel); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, "channel.yaml"), info.Bytes()); err != nil {
		return err
	}

	for _, msg := range feed.Messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := msg.Validate(); err != nil {
			return err
		}

		relPath, err := MessagePath(feed.ChannelID, msg.Number)
		if err != nil {
			return err
		}
		content, err := FormatMessage(feed.ChannelID, msg)
		if err != nil {
			return err
		}
		if err := writeFileAtomic(filepath.Join(w.baseDir, relPath), []byte(content)); err != nil {
			return err
		}
	}

	return nil
}

// writeFileAtomic writes to a temporary file and renames it into place so
// readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
