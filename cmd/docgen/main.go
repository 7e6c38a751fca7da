// Package main generates the metaloader reference docs: a loader catalog
// built from the registry and per-package API pages from gomarkdoc.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-drift/metaloader/pkg/loaders"
)

// Package is a Go package with an API page.
type Package struct {
	Name  string
	Path  string
	Title string
}

var packages = []Package{
	{Name: "loaders", Path: "pkg/loaders", Title: "Loaders"},
	{Name: "metaball", Path: "pkg/metaball", Title: "Metaball"},
	{Name: "animation", Path: "pkg/animation", Title: "Animation"},
	{Name: "graphics", Path: "pkg/graphics", Title: "Graphics"},
	{Name: "raster", Path: "pkg/raster", Title: "Raster"},
	{Name: "errors", Path: "pkg/errors", Title: "Errors"},
	{Name: "testing", Path: "pkg/testing", Title: "Testing"},
}

func main() {
	root, err := findRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding repo root: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Repository root: %s\n", root)

	docsDir := filepath.Join(root, "docs")
	apiDir := filepath.Join(docsDir, "api")
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating api directory: %v\n", err)
		os.Exit(1)
	}

	if err := writeCatalogFile(filepath.Join(docsDir, "loaders.md")); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing loader catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Wrote docs/loaders.md")

	if err := ensureGomarkdoc(); err != nil {
		fmt.Fprintf(os.Stderr, "Error ensuring gomarkdoc: %v\n", err)
		os.Exit(1)
	}
	for _, pkg := range packages {
		if _, err := os.Stat(filepath.Join(root, pkg.Path)); os.IsNotExist(err) {
			fmt.Printf("Skipping %s (not found)\n", pkg.Name)
			continue
		}
		fmt.Printf("Generating docs for %s...\n", pkg.Name)
		if err := generatePackageDocs(root, pkg, apiDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating docs for %s: %v\n", pkg.Name, err)
			os.Exit(1)
		}
	}
	fmt.Println("\nDocumentation generated in docs/")
}

func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

func ensureGomarkdoc() error {
	if _, err := exec.LookPath("gomarkdoc"); err == nil {
		return nil
	}
	fmt.Println("Installing gomarkdoc...")
	cmd := exec.Command("go", "install", "github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func writeCatalogFile(path string) error {
	var buf bytes.Buffer
	if err := writeCatalog(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// writeCatalog lists every registered loader in registry order.
func writeCatalog(w io.Writer) error {
	fmt.Fprintln(w, "# Loaders")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sizes are intrinsic, in logical pixels. Render any of them with")
	fmt.Fprintln(w, "`metaloader render <name>`.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Name | Width | Height |")
	fmt.Fprintln(w, "|------|------:|-------:|")
	for _, name := range loaders.Names() {
		l, err := loaders.New(name)
		if err != nil {
			return err
		}
		size := l.IntrinsicSize()
		fmt.Fprintf(w, "| `%s` | %g | %g |\n", name, size.Width, size.Height)
	}
	return nil
}

func generatePackageDocs(root string, pkg Package, apiDir string) error {
	cmd := exec.Command("gomarkdoc", "./"+pkg.Path)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gomarkdoc: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		fmt.Printf("  Warning: no documentation generated for %s\n", pkg.Name)
		return nil
	}
	content := "# " + pkg.Title + "\n" + processMarkdown(stdout.String())
	return os.WriteFile(filepath.Join(apiDir, pkg.Name+".md"), []byte(content), 0o644)
}

// processMarkdown strips what gomarkdoc emits that the pages replace: its
// own title, the index, import blocks and the HTML around examples.
func processMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inIndex, inImport := false, false

	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}
		if line == "## Index" {
			inIndex = true
			continue
		}
		if inIndex {
			if !strings.HasPrefix(line, "## ") {
				continue
			}
			inIndex = false
		}

		if strings.HasPrefix(line, "```go") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "import ") {
			inImport = true
		}
		if inImport {
			if line == "```" {
				inImport = false
			}
			continue
		}

		if summary, ok := strings.CutPrefix(line, "<details><summary>"); ok && strings.HasSuffix(summary, "</summary>") {
			result = append(result, "", "**"+strings.TrimSuffix(summary, "</summary>")+":**", "")
			continue
		}
		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
