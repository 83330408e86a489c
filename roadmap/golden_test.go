package roadmap_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/buffos/go-roadmap/internal/definition"
	"github.com/buffos/go-roadmap/roadmap"
)

var update = flag.Bool("update", false, "rewrite the testdata/*.expected.svg snapshots")

// TestSVGSnapshots renders every definition under testdata and compares the
// SVG with <name>.expected.svg. Run with -update to rewrite the snapshots.
func TestSVGSnapshots(t *testing.T) {
	testDataDir := "testdata"

	var files []string
	for _, ext := range definition.Extensions() {
		matches, err := filepath.Glob(filepath.Join(testDataDir, "*"+ext))
		if err != nil {
			t.Fatalf("Error finding definition files: %v", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		t.Fatalf("No definition files found in %s", testDataDir)
	}

	clock := func() time.Time { return time.Date(2025, time.May, 6, 12, 0, 0, 0, time.UTC) }

	for _, file := range files {
		baseName := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		t.Run(baseName, func(t *testing.T) {
			expectedSVGFile := filepath.Join(testDataDir, baseName+".expected.svg")

			def, err := definition.Load(file)
			if err != nil {
				t.Fatalf("Error loading %s: %v", file, err)
			}
			r, err := definition.Build(def, roadmap.WithClock(clock))
			if err != nil {
				t.Fatalf("Error building %s: %v", file, err)
			}

			var buf bytes.Buffer
			if err := r.Render(context.Background(), &buf, roadmap.FormatSVG); err != nil {
				t.Fatalf("Error generating SVG for %s: %v", baseName, err)
			}
			generatedSVG := buf.String()

			if *update {
				if err := os.WriteFile(expectedSVGFile, []byte(generatedSVG), 0644); err != nil {
					t.Fatalf("Failed to write expected SVG %s: %v", expectedSVGFile, err)
				}
				t.Logf("Updated %s", expectedSVGFile)
				return
			}

			expectedSVGBytes, err := os.ReadFile(expectedSVGFile)
			if err != nil {
				if os.IsNotExist(err) {
					t.Fatalf("Expected SVG file %s not found; run go test ./roadmap -run TestSVGSnapshots -update", expectedSVGFile)
				}
				t.Fatalf("Error reading expected SVG file %s: %v", expectedSVGFile, err)
			}

			normalizedGenerated := strings.ReplaceAll(generatedSVG, "\r\n", "\n")
			normalizedExpected := strings.ReplaceAll(string(expectedSVGBytes), "\r\n", "\n")
			if normalizedGenerated != normalizedExpected {
				pos := firstDifference(normalizedGenerated, normalizedExpected)
				t.Errorf("Generated SVG for %s does not match %s.\nFirst difference near character %d:\nEXPECTED:\n...%s...\nGOT:\n...%s...",
					baseName, expectedSVGFile, pos,
					excerpt(normalizedExpected, pos), excerpt(normalizedGenerated, pos))
			}
		})
	}
}

func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func excerpt(s string, pos int) string {
	from := max(0, pos-60)
	to := min(len(s), pos+60)
	return s[from:to]
}
