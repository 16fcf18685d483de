package license

import (
	"crypto/md5"
	"encoding/hex"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func sum(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestResolveDual(t *testing.T) {
	fsys := fstest.MapFS{
		"LICENSE-MIT":    file("mit text"),
		"LICENSE-APACHE": file("apache text"),
		"Cargo.toml":     file("[package]"),
	}

	res := Resolve(fsys, "", "MIT/Apache-2.0", "")

	if res.License != "MIT | Apache-2.0" {
		t.Errorf("License = %q, want %q", res.License, "MIT | Apache-2.0")
	}
	if res.Single {
		t.Error("Single = true, want false")
	}
	if len(res.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(res.Files))
	}

	mit := res.Files[0]
	if mit.Path != "LICENSE-MIT" || mit.MD5 != sum("mit text") || mit.Synthetic {
		t.Errorf("MIT entry = %+v", mit)
	}
	if got, want := mit.Directive(), "file://LICENSE-MIT;md5="+sum("mit text"); got != want {
		t.Errorf("Directive() = %q, want %q", got, want)
	}

	// No LICENSE-Apache-2.0 file and not single: falls back to the stock text.
	apache := res.Files[1]
	if !apache.Synthetic {
		t.Errorf("Apache entry should be synthetic: %+v", apache)
	}
	if got, want := apache.Directive(), "file://${COMMON_LICENSE_DIR}/Apache-2.0;md5=generic"; got != want {
		t.Errorf("Directive() = %q, want %q", got, want)
	}
	if len(res.Advisories) != 1 || !strings.Contains(res.Advisories[0], "Apache-2.0") {
		t.Errorf("Advisories = %q", res.Advisories)
	}
}

func TestResolveSearchOrder(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		expr     string
		wantPath string
	}{
		{
			name:     "exact suffixed name",
			fsys:     fstest.MapFS{"LICENSE-MIT.md": file("x"), "LICENSE": file("y")},
			expr:     "MIT",
			wantPath: "LICENSE-MIT.md",
		},
		{
			name:     "underscore form",
			fsys:     fstest.MapFS{"LICENSE_MIT": file("x")},
			expr:     "MIT",
			wantPath: "LICENSE_MIT",
		},
		{
			name:     "reuse layout",
			fsys:     fstest.MapFS{"LICENSES/MIT.txt": file("x")},
			expr:     "MIT",
			wantPath: "LICENSES/MIT.txt",
		},
		{
			name:     "case insensitive",
			fsys:     fstest.MapFS{"license-mit": file("x"), "LICENSE": file("y")},
			expr:     "MIT",
			wantPath: "license-mit",
		},
		{
			name:     "generic fallback for single license",
			fsys:     fstest.MapFS{"LICENSE": file("x")},
			expr:     "MIT",
			wantPath: "LICENSE",
		},
		{
			name:     "generic fallback ignores case",
			fsys:     fstest.MapFS{"copying": file("x")},
			expr:     "GPL-2.0",
			wantPath: "copying",
		},
		{
			name:     "exact before case insensitive",
			fsys:     fstest.MapFS{"license-mit": file("x"), "MIT.txt": file("y")},
			expr:     "MIT",
			wantPath: "MIT.txt",
		},
		{
			name:     "spdx or",
			fsys:     fstest.MapFS{"LICENSE-MIT": file("x")},
			expr:     "MIT OR Apache-2.0",
			wantPath: "LICENSE-MIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.fsys, "", tt.expr, "")
			if len(res.Files) == 0 {
				t.Fatal("no entries")
			}
			got := res.Files[0]
			if got.Synthetic || got.Path != tt.wantPath {
				t.Errorf("entry = %+v, want path %q", got, tt.wantPath)
			}
		})
	}
}

func TestResolveGenericOnlyWhenSingle(t *testing.T) {
	fsys := fstest.MapFS{"LICENSE": file("x")}
	res := Resolve(fsys, "", "MIT/Apache-2.0", "")
	for _, e := range res.Files {
		if !e.Synthetic {
			t.Errorf("entry %+v matched a generic file for a multi-license package", e)
		}
	}
}

func TestResolveRelDir(t *testing.T) {
	fsys := fstest.MapFS{"LICENSE-MIT": file("x")}
	res := Resolve(fsys, "crates/app", "MIT", "")
	if got, want := res.Files[0].Directive(), "file://crates/app/LICENSE-MIT;md5="+sum("x"); got != want {
		t.Errorf("Directive() = %q, want %q", got, want)
	}
}

func TestResolveLicenseFileOnly(t *testing.T) {
	fsys := fstest.MapFS{"docs/COPYRIGHT.txt": file("custom")}
	res := Resolve(fsys, "", "", "docs/COPYRIGHT.txt")

	if res.License != "docs/COPYRIGHT.txt" {
		t.Errorf("License = %q", res.License)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "docs/COPYRIGHT.txt" || res.Files[0].MD5 != sum("custom") {
		t.Errorf("Files = %+v", res.Files)
	}
	if len(res.Advisories) == 0 {
		t.Error("expected an advisory about the missing license expression")
	}
}

func TestResolveClosed(t *testing.T) {
	res := Resolve(fstest.MapFS{}, "", "", "")

	if res.License != Closed {
		t.Errorf("License = %q, want %q", res.License, Closed)
	}
	if len(res.Files) != 1 || !res.Files[0].Synthetic {
		t.Fatalf("Files = %+v, want one synthetic entry", res.Files)
	}
	if d := res.Files[0].Directive(); d != "" {
		t.Errorf("Directive() = %q, want empty", d)
	}
	if len(res.Advisories) != 3 {
		t.Errorf("Advisories = %q, want 3 messages", res.Advisories)
	}
}

func TestResolveEntryCount(t *testing.T) {
	for _, expr := range []string{"MIT", "MIT/Apache-2.0", "A/B/C", "MIT OR Unlicense"} {
		ids, _ := Identifiers(expr)
		res := Resolve(fstest.MapFS{}, "", expr, "")
		if len(res.Files) != len(ids) {
			t.Errorf("%q: len(Files) = %d, want %d", expr, len(res.Files), len(ids))
		}
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		expr    string
		want    []string
		wantAdv int
	}{
		{"MIT", []string{"MIT"}, 0},
		{" MIT / Apache-2.0 ", []string{"MIT", "Apache-2.0"}, 0},
		{"MIT OR Apache-2.0", []string{"MIT", "Apache-2.0"}, 0},
		{"MIT//Apache-2.0", []string{"MIT", "Apache-2.0"}, 1},
		{"", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, adv := Identifiers(tt.expr)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Identifiers(%q) = %q, want %q", tt.expr, got, tt.want)
			}
			if len(adv) != tt.wantAdv {
				t.Errorf("advisories = %q, want %d", adv, tt.wantAdv)
			}
		})
	}
}
