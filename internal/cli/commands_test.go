package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arcstrata/pkg/errors"
	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

const treebank = "# sent_id = a\n" +
	"# text = Dogs bark\n" +
	"1\tDogs\tdog\tNOUN\t_\t_\t2\tnsubj\t_\t_\n" +
	"2\tbark\tbark\tVERB\t_\t_\t0\troot\t_\t_\n" +
	"\n" +
	"# sent_id = b\n" +
	"1\tHi\thi\tINTJ\t_\t_\t0\troot\t_\t_\n"

const danglingDoc = `{"sentences": [{
  "id": "lost-head",
  "tokens": [{"form": "Hi"}],
  "edges": [{"source": "lost", "target": "gone", "label": "dep"}]
}]}`

// captureStdout redirects status output to a buffer for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// testEnv isolates config and cache directories and writes the sample
// treebank into a fresh directory.
func testEnv(t *testing.T) (input, cacheHome string) {
	t.Helper()
	isolateConfig(t)
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	input = filepath.Join(t.TempDir(), "treebank.conllu")
	writeFile(t, input, treebank)
	return input, cacheHome
}

// execute runs the root command with args and returns what it wrote to
// its output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readLayoutFile(t *testing.T, path string) []graph.Layout {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	layouts, err := graph.ReadLayouts(f)
	if err != nil {
		t.Fatalf("read layouts: %v", err)
	}
	return layouts
}

func TestLayoutCommand(t *testing.T) {
	input, _ := testEnv(t)
	status := captureStdout(t)
	output := filepath.Join(t.TempDir(), "out.json")

	if _, err := execute(t, "layout", input, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	layouts := readLayoutFile(t, output)
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	if layouts[0].SentenceID != "a" || layouts[1].SentenceID != "b" {
		t.Errorf("sentence order = %q, %q", layouts[0].SentenceID, layouts[1].SentenceID)
	}
	if len(layouts[0].Edges) != 2 {
		t.Errorf("sentence a has %d edges, want 2", len(layouts[0].Edges))
	}
	if !strings.Contains(status.String(), "Layout complete") {
		t.Errorf("status output = %q", status.String())
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)

	if _, err := execute(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	want := strings.TrimSuffix(input, ".conllu") + ".layout.json"
	if layouts := readLayoutFile(t, want); len(layouts) != 2 {
		t.Errorf("got %d layouts in %s", len(layouts), want)
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)

	out, err := execute(t, "layout", input, "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	layouts, err := graph.ReadLayouts(strings.NewReader(out))
	if err != nil {
		t.Fatalf("stdout is not a layout document: %v\n%s", err, out)
	}
	if len(layouts) != 2 {
		t.Errorf("got %d layouts, want 2", len(layouts))
	}
}

func TestLayoutCommandFillsFileCache(t *testing.T) {
	input, cacheHome := testEnv(t)
	captureStdout(t)
	output := filepath.Join(t.TempDir(), "out.json")

	if _, err := execute(t, "layout", input, "-o", output); err != nil {
		t.Fatalf("layout: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatalf("cache directory: %v", err)
	}
	if len(entries) == 0 {
		t.Error("file cache is empty after a cached layout run")
	}

	if out, err := execute(t, "cache", "path"); err != nil || strings.TrimSpace(out) != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q, %v", out, err)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	testEnv(t)
	captureStdout(t)

	_, err := execute(t, "layout", filepath.Join(t.TempDir(), "missing.conllu"), "--no-cache")
	if errors.ExitCode(err) != errors.ExitNotFound {
		t.Errorf("missing input: err = %v, want a not-found error", err)
	}
	if _, err := execute(t, "layout"); err == nil {
		t.Error("expected an error without arguments")
	}
}

func TestViewPlain(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)

	out, err := execute(t, "view", input, "--plain", "--no-cache")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	for _, want := range []string{"# sent_id = a", "# text = Dogs bark", "# sent_id = b", "Dogs", "Hi"} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "view", input, "--plain", "--no-cache", "-s", "b")
	if err != nil {
		t.Fatalf("view -s b: %v", err)
	}
	if strings.Contains(out, "# sent_id = a") || !strings.Contains(out, "# sent_id = b") {
		t.Errorf("sentence filter ignored:\n%s", out)
	}

	if _, err := execute(t, "view", input, "--plain", "--no-cache", "-s", "zzz"); errors.ExitCode(err) != errors.ExitNotFound {
		t.Errorf("unknown sentence: err = %v, want a not-found error", err)
	}
}

func TestExportDOT(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)
	dir := filepath.Join(t.TempDir(), "diagrams")

	if _, err := execute(t, "export", input, "-f", "dot", "-o", dir, "--no-cache"); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{"treebank-a.dot", "treebank-b.dot"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "digraph") {
			t.Errorf("%s is not a DOT graph", name)
		}
	}
}

func TestExportStdout(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)

	out, err := execute(t, "export", input, "-f", "dot", "-o", "-", "-s", "a", "--no-cache")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("stdout = %q", out)
	}

	if _, err := execute(t, "export", input, "-f", "dot", "-o", "-", "--no-cache"); err == nil {
		t.Error("expected an error when writing several sentences to stdout")
	}
	if _, err := execute(t, "export", input, "-f", "png", "--no-cache"); err == nil {
		t.Error("expected an error for an unsupported export format")
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"a", "tb-a.svg"},
		{"weblog-1/p2 s3", "tb-weblog-1_p2_s3.svg"},
		{"ü", "tb-_.svg"},
	}
	for _, tt := range tests {
		if got := exportFileName("tb", graph.Layout{SentenceID: tt.id}, "svg"); got != tt.want {
			t.Errorf("exportFileName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	input, _ := testEnv(t)
	status := captureStdout(t)

	out, err := execute(t, "check", input)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "Crossings") || !strings.Contains(out, "ok") {
		t.Errorf("check table:\n%s", out)
	}
	if !strings.Contains(status.String(), "No dangling edges in 2 sentences") {
		t.Errorf("status = %q", status.String())
	}
}

func TestCheckCommandJSONAndStrict(t *testing.T) {
	testEnv(t)
	captureStdout(t)
	input := filepath.Join(t.TempDir(), "dangling.json")
	writeFile(t, input, danglingDoc)

	out, err := execute(t, "check", input, "--json")
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}
	var reports []pipeline.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode reports: %v\n%s", err, out)
	}
	if len(reports) != 1 || len(reports[0].Dangling) != 1 {
		t.Fatalf("reports = %+v", reports)
	}

	_, err = execute(t, "check", input, "--strict")
	if errors.GetCode(err) != errors.ErrCodeDanglingEdge {
		t.Errorf("--strict: err = %v, want a %s error", err, errors.ErrCodeDanglingEdge)
	}
}

func TestCacheClear(t *testing.T) {
	input, cacheHome := testEnv(t)
	status := captureStdout(t)

	if _, err := execute(t, "layout", input, "-o", filepath.Join(t.TempDir(), "out.json")); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("cache entry %s survived clear", e.Name())
		}
	}
	if !strings.Contains(status.String(), "Cleared") {
		t.Errorf("status = %q", status.String())
	}
}

func TestCacheClearOtherBackend(t *testing.T) {
	dir := isolateConfig(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "cache:\n  backend: none\n")
	status := captureStdout(t)

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(status.String(), "nothing to clear") {
		t.Errorf("status = %q", status.String())
	}
}

func TestCompletion(t *testing.T) {
	isolateConfig(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	input, _ := testEnv(t)
	captureStdout(t)
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, cfg, "batch:\n  concurrency: -4\n")

	if _, err := execute(t, "--config", cfg, "layout", input); err == nil || !strings.Contains(err.Error(), "batch.concurrency") {
		t.Errorf("err = %v, want a batch.concurrency error", err)
	}
}
