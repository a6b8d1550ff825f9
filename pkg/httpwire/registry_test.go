package httpwire

import "testing"

func TestCanonicalizeKnownHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"content-length", "Content-Length"},
		{"CONTENT-TYPE", "Content-Type"},
		{"Host", "Host"},
		{"accept-encoding", "Accept-Encoding"},
	}
	for _, tt := range tests {
		got, ok := canonicalize(tt.in, nil, false)
		if !ok || got != tt.want {
			t.Errorf("canonicalize(%q) = %q, %v; want %q, true", tt.in, got, ok, tt.want)
		}
	}
}

func TestCanonicalizeXPrefixed(t *testing.T) {
	got, ok := canonicalize("x-custom-thing", nil, true)
	if !ok || got != "X-Custom-Thing" {
		t.Errorf("canonicalize(x-custom-thing) = %q, %v; want X-Custom-Thing, true", got, ok)
	}
}

func TestCanonicalizeStrictRejectsUnknown(t *testing.T) {
	if _, ok := canonicalize("totally-unknown-header", nil, true); ok {
		t.Error("strict canonicalize accepted an unrecognized name")
	}
	got, ok := canonicalize("totally-unknown-header", nil, false)
	if !ok || got != "Totally-Unknown-Header" {
		t.Errorf("non-strict canonicalize = %q, %v; want Totally-Unknown-Header, true", got, ok)
	}
}

func TestCanonicalizeKindRestriction(t *testing.T) {
	allowed := allowedSet(KindClient)
	if _, ok := canonicalize("Set-Cookie", allowed, true); ok {
		t.Error("client kind accepted a response-only header in strict mode")
	}
	if _, ok := canonicalize("Host", allowed, true); !ok {
		t.Error("client kind rejected a request header")
	}
}

func TestGroupOf(t *testing.T) {
	if g := groupOf("Content-Length"); g != GroupEntity {
		t.Errorf("groupOf(Content-Length) = %v, want entity", g)
	}
	if g := groupOf("Host"); g != GroupRequest {
		t.Errorf("groupOf(Host) = %v, want request", g)
	}
	if g := groupOf("X-Unknown"); g != GroupNone {
		t.Errorf("groupOf(X-Unknown) = %v, want none", g)
	}
}

func TestForKind(t *testing.T) {
	names := ForKind(KindClient)
	found := false
	for _, n := range names {
		if n == "Host" {
			found = true
		}
		if n == "Set-Cookie" {
			t.Error("ForKind(KindClient) included a response-only header")
		}
	}
	if !found {
		t.Error("ForKind(KindClient) missing Host")
	}
}

func TestHeaderKindString(t *testing.T) {
	if KindClient.String() != "client" || KindServer.String() != "server" || KindBoth.String() != "both" {
		t.Error("HeaderKind.String() mismatch")
	}
}
