package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/lostfound/internal/config"
	"github.com/five82/lostfound/internal/devserver"
	"github.com/five82/lostfound/internal/logging"
	"github.com/five82/lostfound/internal/present"
)

type harness struct {
	t      *testing.T
	api    string
	logDir string
	config string
	prefs  string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	logDir := t.TempDir()
	t.Setenv(config.EnvLogDir, logDir)
	t.Setenv(config.EnvAPIBase, "")

	srv := httptest.NewServer(devserver.New("/static/uploads", logging.Discard()).Router())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return harness{
		t:      t,
		api:    srv.URL,
		logDir: logDir,
		config: filepath.Join(dir, "config.toml"),
		prefs:  filepath.Join(dir, "prefs.toml"),
	}
}

func (h harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--api", h.api, "--config", h.config, "--prefs", h.prefs}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, name string, shade uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			v := shade
			if x < 8 {
				v = 255 - shade
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestAddFindListDelete(t *testing.T) {
	h := newHarness(t)
	umbrella := writeImage(t, "umbrella.png", 20)

	out, err := h.run("", "add", umbrella, "--info", "Blue umbrella")
	if err != nil {
		t.Fatalf("add: %v (%s)", err, out)
	}
	if !strings.Contains(out, "Image uploaded") {
		t.Fatalf("add output = %q", out)
	}

	out, err = h.run("", "find", umbrella)
	if err != nil {
		t.Fatalf("find: %v (%s)", err, out)
	}
	for _, want := range []string{"100.00% (high confidence)", "umbrella.png", "Blue umbrella"} {
		if !strings.Contains(out, want) {
			t.Fatalf("find output missing %q:\n%s", want, out)
		}
	}

	out, err = h.run("", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "FILENAME") || !strings.Contains(out, "umbrella.png") {
		t.Fatalf("list output = %q", out)
	}

	out, err = h.run("n\n", "delete", "1")
	if err != nil {
		t.Fatalf("declined delete: %v", err)
	}
	if !strings.Contains(out, "Aborted") {
		t.Fatalf("declined delete output = %q", out)
	}
	if out, _ = h.run("", "list"); !strings.Contains(out, "umbrella.png") {
		t.Fatal("declined delete removed the entry")
	}

	out, err = h.run("", "delete", "1", "--yes")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, present.Deleted) {
		t.Fatalf("delete output = %q", out)
	}

	out, err = h.run("", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, present.EmptyCatalog) {
		t.Fatalf("list output = %q", out)
	}
}

func TestFindOnEmptyCatalogueFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "find", writeImage(t, "keys.png", 90))
	if err == nil || !strings.Contains(err.Error(), "No similar image found") {
		t.Fatalf("err = %v", err)
	}
}

func TestFindRejectsNonImage(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := h.run("", "find", path)
	if err == nil || err.Error() != "Please select an image file" {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "delete", "42", "--yes")
	if err == nil || err.Error() != "Delete failed: image not found" {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteRejectsBadID(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run("", "delete", "abc", "--yes"); err == nil {
		t.Fatal("expected an error for a non-numeric id")
	}
}

func TestListYAMLAndExport(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("", "add", writeImage(t, "wallet.png", 60), "--info", "Brown wallet"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := h.run("", "list", "--format", "yaml")
	if err != nil {
		t.Fatalf("list yaml: %v", err)
	}
	for _, want := range []string{"count: 1", "filename: wallet.png", "info: Brown wallet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml missing %q:\n%s", want, out)
		}
	}

	target := filepath.Join(t.TempDir(), "catalogue.parquet")
	out, err = h.run("", "export", "--out", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 1 entries") {
		t.Fatalf("export output = %q", out)
	}
	if info, err := os.Stat(target); err != nil || info.Size() == 0 {
		t.Fatalf("export file: %v", err)
	}
}

func TestListRejectsUnknownFormat(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run("", "list", "--format", "csv"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestLogsFiltersByLevel(t *testing.T) {
	h := newHarness(t)
	content := strings.Join([]string{
		`time=2024-03-01T10:00:00Z level=DEBUG msg="catalogue loaded"`,
		`time=2024-03-01T10:00:01Z level=INFO msg="request started"`,
		`time=2024-03-01T10:00:02Z level=WARN msg="delete failed"`,
		`time=2024-03-01T10:00:03Z level=ERROR msg="boom"`,
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(h.logDir, "lostfound.log"), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, err := h.run("", "logs", "--level", "warn")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if strings.Contains(out, "request started") || !strings.Contains(out, "delete failed") || !strings.Contains(out, "boom") {
		t.Fatalf("logs output = %q", out)
	}

	out, err = h.run("", "logs", "-n", "1")
	if err != nil {
		t.Fatalf("logs -n: %v", err)
	}
	if strings.TrimSpace(out) != `time=2024-03-01T10:00:03Z level=ERROR msg="boom"` {
		t.Fatalf("logs -n 1 = %q", out)
	}
}
