package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/metaloader/pkg/graphics"
)

func recordedSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	d := NewFrameDriver(20 * time.Millisecond)
	s := startSlider(t, d)
	return d.Record(s, graphics.Size{Width: 120, Height: 20}, 4)
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := recordedSnapshot(t)
	b := recordedSnapshot(t)
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := recordedSnapshot(t)
	b := recordedSnapshot(t)
	b.Frames[2].Ops[0].Params["cx"] = 99.0

	diff := a.Diff(b)
	if !strings.Contains(diff, `"cx": 99`) || !strings.Contains(diff, `"cx": 40`) {
		t.Errorf("expected a diff, got %q", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "slider.snapshot.json")
	snap := recordedSnapshot(t)
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	fake := &fakeT{name: t.Name()}
	recordedSnapshot(t).MatchesFile(fake, path)
	if fake.failed {
		t.Errorf("round-tripped snapshot did not match: %s", fake.msg)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	fake := &fakeT{name: t.Name()}
	recordedSnapshot(t).MatchesFile(fake, filepath.Join(t.TempDir(), "missing.json"))
	if !fake.failed || !strings.Contains(fake.msg, "snapshot file missing") {
		t.Errorf("expected missing-file failure, got %q", fake.msg)
	}
}

type fakeT struct {
	name   string
	failed bool
	msg    string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func (f *fakeT) Name() string { return f.name }
