package output

import "testing"

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"/usr/bin/nginx":     "/usr/bin/nginx",
		"/tmp/\x1b[31mred":   `/tmp/\x1b[31mred`,
		"nul:\x00":           `nul:\x00`,
		"bad:\xff":           `bad:\xff`,
		"a\tb\nc":            `a\tb\nc`,
		"/opt/caf\u00e9/srv": "/opt/caf\u00e9/srv",
		"/bin/\u0085next":    `/bin/\u0085next`,
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{"", "/usr/bin/x", "\x1b[2J", "\xff\xfe", "tab\there"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		out := Sanitize(s)
		if !clean(out) {
			t.Fatalf("Sanitize(%q) = %q still has control characters", s, out)
		}
		if clean(s) && out != s {
			t.Fatalf("clean input %q was rewritten to %q", s, out)
		}
	})
}
