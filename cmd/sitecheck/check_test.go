package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/history"
	"github.com/nao1215/sitecheck/internal/log"
	"github.com/nao1215/sitecheck/internal/report"
)

// validPage returns a page that passes every check against example.com.
func validPage(title, canonical string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	sb.WriteString(`<meta name="description" content="Notes for planning a trip.">` + "\n")
	fmt.Fprintf(&sb, "<link rel=\"canonical\" href=\"%s\">\n", canonical)
	fmt.Fprintf(&sb, "<meta property=\"og:title\" content=\"%s\">\n", title)
	sb.WriteString(`<meta property="og:description" content="Notes for planning a trip.">` + "\n")
	sb.WriteString(`<script type="application/ld+json">{"@type":"WebPage"}</script>` + "\n")
	fmt.Fprintf(&sb, "</head><body>\n<h1>%s</h1>\n", title)
	sb.WriteString(`<a href="/">Home</a> <a href="/about">About</a> <a href="/index.html">Index</a>`)
	sb.WriteString("\n<p>")
	sb.WriteString(strings.TrimSpace(strings.Repeat("travel ", 200)))
	sb.WriteString("</p>\n</body></html>\n")
	return sb.String()
}

const testSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>
`

// writeSite writes files into a new temporary site directory and an empty
// configuration file next to it, and returns both paths.
func writeSite(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "site")
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath := filepath.Join(base, "sitecheck.yaml")
	if err := os.WriteFile(cfgPath, []byte("baseURL: https://example.com/\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return root, cfgPath
}

func validSite() map[string]string {
	return map[string]string{
		"index.html":  validPage("Home", "https://example.com/"),
		"about.html":  validPage("About", "https://example.com/about"),
		"sitemap.xml": testSitemap,
	}
}

// executeCheck runs "sitecheck check" with args and returns its outputs.
func executeCheck(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"check"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestNewCheckCmd tests the check command flags.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()
	for _, name := range []string{"dir", "fix", "config", "base-url", "json", "markdown", "output", "color", "history"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if flag := cmd.Flags().Lookup("dir"); flag != nil && flag.DefValue != "." {
		t.Errorf("expected dir default '.', got %q", flag.DefValue)
	}
}

// TestCheckCmd tests running the check command against a site on disk.
func TestCheckCmd(t *testing.T) {
	t.Run("valid site passes", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())

		stdout, _, err := executeCheck(t, "--dir", root, "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, stdout)
		}
		for _, want := range []string{"Found 2 HTML files to validate", "Files checked:  2", "ALL CHECKS PASSED"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q\n%s", want, stdout)
			}
		}
	})

	t.Run("verbose lists pages", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())

		stdout, stderr, err := executeCheck(t, "--dir", root, "-c", cfgPath, "-v")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Checking: about.html") {
			t.Errorf("expected per-page lines\n%s", stdout)
		}
		if !strings.Contains(stderr, "path="+root) {
			t.Errorf("expected the site root in the debug log\n%s", stderr)
		}
	})

	t.Run("errors fail the run", func(t *testing.T) {
		files := validSite()
		files["broken.html"] = "<html><head></head><body><p>{{ title }}</p></body></html>"
		root, cfgPath := writeSite(t, files)

		stdout, _, err := executeCheck(t, "--dir", root, "-c", cfgPath)
		if !errors.Is(err, errValidationFailed) {
			t.Fatalf("expected errValidationFailed, got %v", err)
		}
		for _, want := range []string{"[TITLE] broken.html", "[PLACEHOLDER] broken.html", "ERROR(S) FOUND"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q\n%s", want, stdout)
			}
		}
	})

	t.Run("fix is a no-op", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())
		before, err := os.ReadFile(filepath.Join(root, "index.html"))
		if err != nil {
			t.Fatal(err)
		}

		_, stderr, err := executeCheck(t, "--dir", root, "-c", cfgPath, "--fix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "--fix is not implemented") {
			t.Errorf("expected a warning about --fix, got %q", stderr)
		}
		after, err := os.ReadFile(filepath.Join(root, "index.html"))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(before, after) {
			t.Error("expected page to be unchanged")
		}
	})

	t.Run("json goes to stdout alone", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())

		stdout, stderr, err := executeCheck(t, "--dir", root, "-c", cfgPath, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout)
		}
		if !decoded.Succeeded || decoded.Report.FilesChecked != 2 {
			t.Errorf("unexpected report %+v", decoded)
		}
		if !strings.Contains(stderr, "Found 2 HTML files") {
			t.Errorf("expected progress on stderr, got %q", stderr)
		}
	})

	t.Run("output file receives markdown", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())
		outPath := filepath.Join(t.TempDir(), "reports", "seo.md")

		stdout, _, err := executeCheck(t, "--dir", root, "-c", cfgPath, "--markdown", "-o", outPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("report file not written: %v", err)
		}
		if !strings.Contains(string(content), "# SEO Validation Report") {
			t.Errorf("expected markdown report\n%s", content)
		}
		if !strings.Contains(stdout, "ALL CHECKS PASSED") {
			t.Errorf("expected text report on stdout\n%s", stdout)
		}
	})

	t.Run("base url flag overrides file", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())

		stdout, _, err := executeCheck(t, "--dir", root, "-c", cfgPath, "--base-url", "https://staging.example.com/")
		if err != nil {
			t.Fatalf("expected warnings only, got %v", err)
		}
		if !strings.Contains(stdout, "SITEMAP_MISSING") {
			t.Errorf("expected sitemap warnings for the other origin\n%s", stdout)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		root, _ := writeSite(t, validSite())

		_, _, err := executeCheck(t, "--dir", root, "-c", filepath.Join(root, "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		root, cfgPath := writeSite(t, validSite())

		_, _, err := executeCheck(t, "--dir", root, "-c", cfgPath, "--json", "--markdown")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("missing site directory", func(t *testing.T) {
		_, cfgPath := writeSite(t, validSite())

		_, _, err := executeCheck(t, "--dir", filepath.Join(t.TempDir(), "nope"), "-c", cfgPath)
		if err == nil || errors.Is(err, errValidationFailed) {
			t.Errorf("expected enumeration error, got %v", err)
		}
	})
}

// TestRunCheckSavesHistory tests storing a run in the history database.
func TestRunCheckSavesHistory(t *testing.T) {
	t.Parallel()

	root, _ := writeSite(t, validSite())

	cfg := config.NewConfig()
	cfg.RootDir = root
	cfg.BaseURL = "https://example.com"
	cfg.SaveHistory = true
	cfg.DBDir = t.TempDir()

	logger := log.NewLogger(io.Discard, false, root)
	if err := runCheck(context.Background(), io.Discard, io.Discard, cfg, logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := history.Open(cfg.DBDir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.List(context.Background(), root, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].FilesChecked != 2 || runs[0].Errors != 0 {
		t.Errorf("unexpected runs %+v", runs)
	}
}
