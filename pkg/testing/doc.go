// Package testing provides helpers for testing loaders frame by frame.
//
// # Quick Start
//
// Drive a loader with a fake clock and inspect what it paints:
//
//	func TestMyLoader(t *testing.T) {
//	    driver := loadertest.NewFrameDriver(16 * time.Millisecond)
//	    l := loaders.NewChase(loaders.DefaultChaseConfig())
//	    if err := l.Start(driver.Scheduler); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    driver.PumpFor(500 * time.Millisecond)
//
//	    canvas := loadertest.NewRecordingCanvas(l.IntrinsicSize())
//	    l.Paint(canvas)
//	    if canvas.Count("drawCircle") != 5 {
//	        t.Error("expected five circles")
//	    }
//	}
//
// # Snapshot Testing
//
// Record a sequence of frames and compare them against a golden file:
//
//	snap := driver.Record(l, l.IntrinsicSize(), 10)
//	snap.MatchesFile(t, "testdata/chase.snapshot.json")
//
// Update snapshots with:
//
//	METALOADER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import loadertest "github.com/go-drift/metaloader/pkg/testing"
package testing
