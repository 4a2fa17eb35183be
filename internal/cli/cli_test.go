package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pseudoloc/internal/config"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

const sampleResX = `<?xml version="1.0" encoding="utf-8"?>
<root>
  <data name="Hello" xml:space="preserve">
    <value>Hello</value>
  </data>
</root>
`

// isolate points config and cache lookups at a fresh temp dir and makes it
// the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvCacheBackend, "")
	t.Setenv(config.EnvRedisAddr, "")
	t.Setenv(config.EnvMongoURI, "")
	t.Setenv(config.EnvServerAddr, "")
	t.Chdir(dir)
	return dir
}

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, stdin string, args ...string) (*CLI, string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return c, out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// =============================================================================
// Root
// =============================================================================

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"localize", "transform", "transforms", "preview", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	_, out, err := execute(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pseudoloc version dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestVerboseSetsDebugLevel(t *testing.T) {
	isolate(t)
	c, _, err := execute(t, "", "-v", "transform", "x")
	if err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	_, out, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pseudoloc") {
		t.Error("bash completion should mention the command name")
	}
}

// =============================================================================
// transform / transforms
// =============================================================================

func TestTransformCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"brackets", "", []string{"transform", "-b", "Hello {0}"}, "[Hello {0}]\n"},
		{"each arg on its own line", "", []string{"transform", "-b", "a", "b"}, "[a]\n[b]\n"},
		{"stdin lines", "ab\ncd\n", []string{"transform", "--transforms", "mirror,brackets"}, "[ba]\n[dc]\n"},
		{"switches run in registration order", "", []string{"transform", "-m", "-b", "ab"}, "]ba[\n"},
		{"underscores keep placeholders", "", []string{"transform", "-u", "Saved {0} files"}, "______{0}______\n"},
		{"defaults", "", []string{"transform", "OK"}, "[ÖĶÖ]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, out, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTransformCommandUsesConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, config.LocalFile), `transforms = ["underscores"]`)

	_, out, err := execute(t, "", "transform", "ab")
	if err != nil {
		t.Fatal(err)
	}
	if out != "__\n" {
		t.Errorf("output = %q, want configured transforms", out)
	}
}

func TestTransformCommandErrors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "transform", "-b", "--transforms", "mirror", "x")
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("combined selection: %v", err)
	}
	_, _, err = execute(t, "", "transform", "--transforms", "sparkle", "x")
	if !perrors.Is(err, perrors.ErrCodeInvalidTransform) {
		t.Errorf("unknown transform: %v", err)
	}
}

func TestTransformsCommand(t *testing.T) {
	isolate(t)
	_, out, err := execute(t, "", "transforms")
	if err != nil {
		t.Fatal(err)
	}
	for _, info := range transform.All() {
		if !strings.Contains(out, "--"+info.Name) || !strings.Contains(out, string(info.ID)) {
			t.Errorf("table missing %s:\n%s", info.ID, out)
		}
	}
	if !strings.Contains(out, "Example:") {
		t.Errorf("missing example line:\n%s", out)
	}
}

func TestTransformFlagsResolve(t *testing.T) {
	cfg := config.Default()
	cfg.Transforms = []string{"mirror"}

	tests := []struct {
		name    string
		enabled []transform.ID
		ordered []string
		cfg     *config.Config
		want    []transform.ID
	}{
		{"nothing selected uses defaults", nil, nil, nil, transform.Defaults()},
		{"nothing selected uses config", nil, nil, cfg, []transform.ID{transform.MirrorID}},
		{"switches in registration order", []transform.ID{transform.UnderscoresID, transform.AccentsID}, nil, cfg,
			[]transform.ID{transform.AccentsID, transform.UnderscoresID}},
		{"explicit order kept", nil, []string{"u", "accents"}, cfg,
			[]transform.ID{transform.UnderscoresID, transform.AccentsID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &transformFlags{enabled: make(map[transform.ID]*bool), ordered: tt.ordered}
			for _, info := range transform.All() {
				on := slices.Contains(tt.enabled, info.ID)
				f.enabled[info.ID] = &on
			}
			got, err := f.resolve(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// localize
// =============================================================================

func TestLocalizeCommand(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, filepath.Join(dir, "Strings.en.resx"), sampleResX)

	_, out, err := execute(t, "", "localize", "-b", "--no-cache", in)
	if err != nil {
		t.Fatalf("localize: %v", err)
	}
	want := filepath.Join(dir, "Strings.qps-ploc.resx")
	if !strings.Contains(out, "The file "+want+" was written successfully") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "1 entry") {
		t.Errorf("output should report entry count: %q", out)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<value>[Hello]</value>") {
		t.Errorf("output file = %s", data)
	}
}

func TestLocalizeCommandCultureAndOrder(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, filepath.Join(dir, "messages.json"), `{"k": "ab"}`)
	outDir := filepath.Join(dir, "pseudo")

	_, _, err := execute(t, "", "localize", "-m", "-b", "-o", "qps-plocm", "--out-dir", outDir, "-q", in)
	if err != nil {
		t.Fatalf("localize: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "messages.qps-plocm.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"]ba["`) {
		t.Errorf("brackets should run before mirror: %s", data)
	}
}

func TestLocalizeCommandContinuesAfterFailure(t *testing.T) {
	dir := isolate(t)
	missing := filepath.Join(dir, "missing.resx")
	good := writeFile(t, filepath.Join(dir, "ok.yaml"), "greeting: Hello\n")

	_, out, err := execute(t, "", "localize", "--no-cache", missing, good)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
		t.Errorf("err = %v, want failure summary", err)
	}
	if !strings.Contains(out, missing) {
		t.Errorf("failure for %s not reported: %q", missing, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "ok.qps-ploc.yaml")); err != nil {
		t.Errorf("good file not written: %v", err)
	}
}

func TestLocalizeCommandInvalidCulture(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, filepath.Join(dir, "a.json"), `{}`)

	_, _, err := execute(t, "", "localize", "-o", "../evil", in)
	if !perrors.Is(err, perrors.ErrCodeInvalidCulture) {
		t.Errorf("err = %v, want INVALID_CULTURE", err)
	}
}

// =============================================================================
// cache
// =============================================================================

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, filepath.Join(dir, "a.json"), `{"k": "v"}`)

	_, out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	wantDir := filepath.Join(dir, "cache", appName)
	if strings.TrimSpace(out) != wantDir {
		t.Errorf("cache path = %q, want %q", out, wantDir)
	}

	if _, _, err := execute(t, "", "localize", in); err != nil {
		t.Fatalf("localize: %v", err)
	}
	_, out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	_, out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("second clear output = %q", out)
	}
}

func TestCacheDisabled(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvCacheBackend, "none")

	_, out, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Caching is disabled") {
		t.Errorf("output = %q", out)
	}
}

// =============================================================================
// serve
// =============================================================================

func TestServeStopsWithContext(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--no-cache"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !strings.Contains(out.String(), "Serving on 127.0.0.1:0") {
		t.Errorf("output = %q", out.String())
	}
}
