package locator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanlueckn/ul2/pkg/manifest"
	"github.com/vanlueckn/ul2/pkg/platform"
)

var linuxFiles = []string{"libUltralight.so", "libAppCore.so", "libUltralightCore.so", "libWebCore.so"}

// installSDK creates dir with the given library files
func installSDK(t *testing.T, dir string, files ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func envMap(kv map[string]string) platform.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := kv[key]
		return v, ok
	}
}

// testManifest keeps the Ultralight set but only relative search dirs, so
// the host's /usr/lib never influences a test
func testManifest() *manifest.Manifest {
	m := manifest.Default()
	m.SearchDirs = []string{"ultralight/lib", "lib", "bin"}
	return m
}

func newTestLocator(workDir string, env map[string]string, stat StatFunc) *Locator {
	return New(Options{
		Manifest:  testManifest(),
		Platform:  platform.ForOS("linux"),
		LookupEnv: envMap(env),
		Stat:      stat,
		WorkDir:   workDir,
	})
}

func TestPrimaryEnvDirect(t *testing.T) {
	work := t.TempDir()
	sdk := installSDK(t, filepath.Join(t.TempDir(), "sdk"), linuxFiles...)
	installSDK(t, filepath.Join(work, "lib"), linuxFiles...)

	var statted []string
	stat := func(name string) (fs.FileInfo, error) {
		statted = append(statted, name)
		return os.Stat(name)
	}

	l := newTestLocator(work, map[string]string{"UL_DIR": sdk}, stat)
	res, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != sdk {
		t.Errorf("Dir = %q, want %q", res.Dir, sdk)
	}
	if res.Candidate.Source != SourceEnv || res.Candidate.Label != "UL_DIR" {
		t.Errorf("Candidate = %+v", res.Candidate)
	}
	if len(res.Tried) != 0 {
		t.Errorf("Tried = %v, want none", res.Tried)
	}
	for _, p := range statted {
		if !strings.HasPrefix(p, sdk) {
			t.Errorf("consulted %q after the override matched", p)
		}
	}
	if got := res.Message(); got != "Using Ultralight from UL_DIR: "+sdk {
		t.Errorf("Message() = %q", got)
	}
}

func TestPrimaryEnvLibSubdir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ultralight")
	lib := installSDK(t, filepath.Join(root, "lib"), linuxFiles...)

	res, err := newTestLocator(t.TempDir(), map[string]string{"UL_DIR": root}, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != lib {
		t.Errorf("Dir = %q, want %q", res.Dir, lib)
	}
	if res.Candidate.Label != "UL_DIR/lib" {
		t.Errorf("Label = %q", res.Candidate.Label)
	}
	if len(res.Tried) != 1 || !res.Tried[0].Exists || len(res.Tried[0].Missing) != 4 {
		t.Errorf("Tried = %+v, want the root dir with all files missing", res.Tried)
	}
}

func TestPrimaryEnvParentLib(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ultralight")
	bin := filepath.Join(root, "bin")
	if err := os.MkdirAll(bin, 0755); err != nil {
		t.Fatal(err)
	}
	lib := installSDK(t, filepath.Join(root, "lib"), linuxFiles...)

	res, err := newTestLocator(t.TempDir(), map[string]string{"UL_DIR": bin + string(filepath.Separator)}, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != lib {
		t.Errorf("Dir = %q, want %q", res.Dir, lib)
	}
	if got := res.Message(); got != "Using Ultralight from UL_DIR parent's lib: "+lib {
		t.Errorf("Message() = %q", got)
	}
}

func TestLegacyEnvHonoredWhenPrimaryFails(t *testing.T) {
	bogus := installSDK(t, filepath.Join(t.TempDir(), "partial"), "libUltralight.so")
	legacy := installSDK(t, filepath.Join(t.TempDir(), "legacy"), linuxFiles...)

	env := map[string]string{"UL_DIR": bogus, "ULTRALIGHT_DIR": legacy}
	res, err := newTestLocator(t.TempDir(), env, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != legacy {
		t.Errorf("Dir = %q, want %q", res.Dir, legacy)
	}
	if res.Candidate.Source != SourceLegacyEnv {
		t.Errorf("Source = %v, want legacy-env", res.Candidate.Source)
	}
}

func TestLegacyEnvLibSubdir(t *testing.T) {
	root := t.TempDir()
	lib := installSDK(t, filepath.Join(root, "lib"), linuxFiles...)

	res, err := newTestLocator(t.TempDir(), map[string]string{"ULTRALIGHT_DIR": root}, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != lib || res.Candidate.Label != "ULTRALIGHT_DIR/lib" {
		t.Errorf("Result = %+v", res)
	}
}

func TestPartialMatchNeverAccepted(t *testing.T) {
	work := t.TempDir()
	installSDK(t, filepath.Join(work, "ultralight", "lib"), linuxFiles[:3]...)
	full := installSDK(t, filepath.Join(work, "lib"), linuxFiles...)

	res, err := newTestLocator(work, nil, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != full {
		t.Errorf("Dir = %q, want %q", res.Dir, full)
	}
	if len(res.Tried) != 1 || len(res.Tried[0].Missing) != 1 || res.Tried[0].Missing[0] != "libWebCore.so" {
		t.Errorf("Tried = %+v", res.Tried)
	}
	if got := res.Message(); got != "Found Ultralight libraries at: "+full {
		t.Errorf("Message() = %q", got)
	}
}

func TestSystemDirOrder(t *testing.T) {
	work := t.TempDir()
	first := installSDK(t, filepath.Join(work, "ultralight", "lib"), linuxFiles...)
	installSDK(t, filepath.Join(work, "lib"), linuxFiles...)

	res, err := newTestLocator(work, nil, nil).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != first {
		t.Errorf("Dir = %q, want first listed dir %q", res.Dir, first)
	}
}

func TestBinSiblingLib(t *testing.T) {
	work := filepath.Join(t.TempDir(), "project", "build")
	sibling := installSDK(t, filepath.Join(work, "..", "lib"), linuxFiles...)
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}

	m := testManifest()
	m.SearchDirs = nil
	l := New(Options{
		Manifest:  m,
		Platform:  platform.ForOS("linux"),
		LookupEnv: envMap(nil),
		WorkDir:   work,
	})
	res, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Candidate.Source != SourceBinSibling {
		t.Errorf("Source = %v, want bin-sibling", res.Candidate.Source)
	}
	if filepath.Clean(res.Dir) != filepath.Clean(sibling) {
		t.Errorf("Dir = %q, want %q", res.Dir, sibling)
	}
}

func TestNotFound(t *testing.T) {
	l := New(Options{
		Platform:  platform.ForOS("linux"),
		LookupEnv: envMap(nil),
		WorkDir:   t.TempDir(),
	})

	_, err := l.Locate(context.Background())
	if err == nil {
		t.Fatal("Locate() expected error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false for %v", err)
	}
	want := "Could not find Ultralight libraries. Please set UL_DIR environment variable to the directory containing the Ultralight libraries."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error is %T, want *NotFoundError", err)
	}
	if len(nf.Tried) != len(l.Candidates()) {
		t.Errorf("Tried %d candidates, want %d", len(nf.Tried), len(l.Candidates()))
	}
}

func TestEmptyEnvIsUnset(t *testing.T) {
	work := t.TempDir()
	installSDK(t, work, linuxFiles...)

	l := newTestLocator(work, map[string]string{"UL_DIR": "", "ULTRALIGHT_DIR": ""}, nil)
	for _, c := range l.Candidates() {
		if c.Source == SourceEnv || c.Source == SourceLegacyEnv {
			t.Errorf("empty variable produced candidate %+v", c)
		}
	}
	if _, err := l.Locate(context.Background()); err == nil {
		t.Error("work dir itself must not be searched when UL_DIR is empty")
	}
}

func TestCandidatesOrder(t *testing.T) {
	env := map[string]string{"UL_DIR": "/opt/ul", "ULTRALIGHT_DIR": "/opt/legacy"}
	l := New(Options{
		Platform:  platform.ForOS("linux"),
		LookupEnv: envMap(env),
		ExtraDirs: []string{"/srv/sdk/lib"},
	})

	var got []string
	for _, c := range l.Candidates() {
		got = append(got, c.Path)
	}
	want := []string{
		"/opt/ul", filepath.Join("/opt/ul", "lib"), filepath.Join("/opt", "lib"),
		"/opt/legacy", filepath.Join("/opt/legacy", "lib"),
	}
	want = append(want, manifest.Default().SearchDirs...)
	want = append(want, "lib", "lib", filepath.Join("..", "lib"), "/srv/sdk/lib")

	if len(got) != len(want) {
		t.Fatalf("Candidates() = %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPlatformFilenames(t *testing.T) {
	tests := []struct {
		os   string
		want []string
	}{
		{"macos", []string{"libUltralight.dylib", "libAppCore.dylib", "libUltralightCore.dylib", "libWebCore.dylib"}},
		{"windows", []string{"Ultralight.lib", "AppCore.lib", "UltralightCore.lib", "WebCore.lib"}},
		{"linux", linuxFiles},
	}

	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			sdk := installSDK(t, t.TempDir(), tt.want...)
			l := New(Options{
				Manifest:  testManifest(),
				Platform:  platform.ForOS(tt.os),
				LookupEnv: envMap(map[string]string{"UL_DIR": sdk}),
			})
			res, err := l.Locate(context.Background())
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			if strings.Join(res.Files, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Files = %v, want %v", res.Files, tt.want)
			}
		})
	}
}

func TestProbeFileIsNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "libUltralight.so")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	p := newTestLocator("", nil, nil).Probe(Candidate{Path: file})
	if p.Exists || p.OK() {
		t.Errorf("Probe(file) = %+v, want not existing", p)
	}
	if len(p.Missing) != 4 {
		t.Errorf("Missing = %v, want all files", p.Missing)
	}
}

func TestSearchReportsEveryCandidate(t *testing.T) {
	work := t.TempDir()
	installSDK(t, filepath.Join(work, "ultralight", "lib"), linuxFiles...)
	installSDK(t, filepath.Join(work, "lib"), linuxFiles...)

	l := newTestLocator(work, nil, nil)
	probes, err := l.Search(context.Background())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(probes) != len(l.Candidates()) {
		t.Fatalf("Search() returned %d probes, want %d", len(probes), len(l.Candidates()))
	}
	ok := 0
	for _, p := range probes {
		if p.OK() {
			ok++
		}
	}
	// ultralight/lib, lib, and the bin siblings bin->lib, ./bin->lib resolve to lib
	if ok != 4 {
		t.Errorf("%d probes matched, want 4", ok)
	}
}

func TestLocateIdempotent(t *testing.T) {
	root := t.TempDir()
	installSDK(t, filepath.Join(root, "lib"), linuxFiles...)
	l := newTestLocator(t.TempDir(), map[string]string{"UL_DIR": root}, nil)

	a, err := l.Locate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Locate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if a.Dir != b.Dir || a.Candidate != b.Candidate || a.Message() != b.Message() {
		t.Errorf("Locate() not idempotent: %+v vs %+v", a, b)
	}
}

func TestLocateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestLocator(t.TempDir(), nil, nil).Locate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Locate() error = %v, want context.Canceled", err)
	}
}

func TestNixStoreCandidatesLast(t *testing.T) {
	store := t.TempDir()
	lib := installSDK(t, filepath.Join(store, "0123456789abcdfghijklmnpqrsvwxyz-ultralight-1.4.0", "lib"), linuxFiles...)

	l := New(Options{
		Manifest:    testManifest(),
		Platform:    platform.ForOS("linux"),
		LookupEnv:   envMap(nil),
		WorkDir:     t.TempDir(),
		NixStore:    true,
		NixStoreDir: store,
	})
	res, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if res.Dir != lib || res.Candidate.Source != SourceNixStore {
		t.Errorf("Result = %+v, want nix store lib %q", res, lib)
	}
}
