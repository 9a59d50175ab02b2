package capture

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/five82/lostfound/internal/workflow"
)

const (
	octetStream = "application/octet-stream"
	sniffLen    = 512
)

// Zone tracks the drop zone and file chooser for one page.
type Zone struct {
	dragActive  bool
	chooserOpen bool
}

// Browse opens the file chooser.
func (z *Zone) Browse() {
	z.chooserOpen = true
}

// CloseChooser marks the chooser dismissed.
func (z *Zone) CloseChooser() {
	z.chooserOpen = false
}

// ChooserOpen reports whether the chooser is showing.
func (z *Zone) ChooserOpen() bool {
	return z.chooserOpen
}

// DragOver highlights the drop zone.
func (z *Zone) DragOver() {
	z.dragActive = true
}

// DragLeave removes the highlight.
func (z *Zone) DragLeave() {
	z.dragActive = false
}

// DragActive reports whether the drop zone is highlighted.
func (z *Zone) DragActive() bool {
	return z.dragActive
}

// Drop clears the highlight and returns the first path in payload. Extra
// paths are ignored. ok is false when the payload holds no path.
func (z *Zone) Drop(payload string) (path string, ok bool) {
	z.dragActive = false
	return first(ParsePaths(payload))
}

// Picked closes the chooser and returns the first selected path.
func (z *Zone) Picked(paths []string) (path string, ok bool) {
	z.chooserOpen = false
	return first(paths)
}

func first(paths []string) (string, bool) {
	for _, p := range paths {
		if strings.TrimSpace(p) != "" {
			return p, true
		}
	}
	return "", false
}

// ParsePaths splits a pasted payload into paths. Whitespace separates paths
// unless quoted or backslash-escaped; file:// URIs are converted to paths.
func ParsePaths(payload string) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
		inToken bool
	)
	flush := func() {
		if inToken {
			paths = append(paths, fromURI(current.String()))
		}
		current.Reset()
		inToken = false
	}
	for _, r := range payload {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inToken = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	flush()
	out := paths[:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fromURI(token string) string {
	if !strings.HasPrefix(strings.ToLower(token), "file://") {
		return token
	}
	u, err := url.Parse(token)
	if err != nil || u.Path == "" {
		return token
	}
	return u.Path
}

// Load reads path into a workflow file. The declared media type is sniffed
// from the content, falling back to the extension when sniffing is
// inconclusive.
func Load(path string) (workflow.File, error) {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return workflow.File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return workflow.File{}, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return workflow.File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return workflow.File{
		Name:      filepath.Base(path),
		Path:      path,
		MediaType: MediaType(filepath.Base(path), data),
		Data:      data,
	}, nil
}

// MediaType returns the declared media type for a file without parameters.
func MediaType(name string, data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	sniffed := baseType(http.DetectContentType(head))
	if sniffed != octetStream && sniffed != "text/plain" {
		return sniffed
	}
	if byExt := baseType(mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))); byExt != "" {
		return byExt
	}
	return sniffed
}

func baseType(value string) string {
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(value, ";", 2)[0])
	}
	return mediaType
}
