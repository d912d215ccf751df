package shaders

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNames(t *testing.T) {
	want := []string{"lcd", "screen"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestSource(t *testing.T) {
	for _, name := range Names() {
		vert, frag, err := Source(name)
		if err != nil {
			t.Fatalf("Source(%q): %v", name, err)
		}
		for _, src := range []string{vert, frag} {
			if !strings.HasPrefix(src, "#version 330 core") {
				t.Errorf("%s: missing version directive", name)
			}
		}
		if !strings.Contains(vert, "uniform mat3 uTransform") {
			t.Errorf("%s.vert: missing uTransform uniform", name)
		}
		if !strings.Contains(frag, "uniform sampler2D uScreen") {
			t.Errorf("%s.frag: missing uScreen uniform", name)
		}
	}

	if _, _, err := Source("nope"); err == nil {
		t.Error(`Source("nope") succeeded`)
	}
}
