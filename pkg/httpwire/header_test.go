package httpwire

import "testing"

func TestHeaderSetGet(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("content-type", "text/plain")
	if got := h.Get("Content-Type", ""); got != "text/plain" {
		t.Errorf("Get(Content-Type) = %q, want text/plain", got)
	}
	if got := h.Get("CONTENT-TYPE", ""); got != "text/plain" {
		t.Errorf("Get is not case-insensitive: got %q", got)
	}
	if got := h.Get("missing", "default"); got != "default" {
		t.Errorf("Get(missing) = %q, want default", got)
	}
}

func TestHeaderSetEmptyIsNoop(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("X-Thing", "")
	if h.Contains("X-Thing") {
		t.Error("Set with empty value should be a no-op")
	}
}

func TestHeaderAddIsSetValued(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Add("X-Multi", "a")
	h.Add("X-Multi", "b")
	h.Add("X-Multi", "a")
	vs, _ := h.GetAll("X-Multi")
	if len(vs) != 2 {
		t.Errorf("GetAll(X-Multi) = %v, want 2 distinct values", vs)
	}
}

func TestHeaderPop(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("X-Gone", "v")
	vs, ok := h.Pop("x-gone", nil)
	if !ok || len(vs) != 1 || vs[0] != "v" {
		t.Errorf("Pop(x-gone) = %v, %v; want [v], true", vs, ok)
	}
	if h.Contains("X-Gone") {
		t.Error("Pop did not remove the header")
	}
}

func TestHeaderStrictRejectsUnknown(t *testing.T) {
	h := NewHeader(KindClient, true)
	h.Set("X-Whatever", "v")
	if !h.Contains("X-Whatever") {
		t.Error("strict mode should still accept x- prefixed names")
	}
	h.Set("Totally-Made-Up", "v")
	if h.Contains("Totally-Made-Up") {
		t.Error("strict mode accepted an unrecognized non-x- header")
	}
}

func TestHeaderStrictRejectsWrongKind(t *testing.T) {
	h := NewHeader(KindClient, true)
	h.Set("Set-Cookie", "a=b")
	if h.Contains("Set-Cookie") {
		t.Error("client-kind strict container accepted a response-only header")
	}
}

func TestHeaderIterOrder(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("Host", "example.com")
	h.Add("X-A", "1")
	h.Add("X-A", "2")
	fields := h.Iter()
	if len(fields) != 3 {
		t.Fatalf("Iter() returned %d fields, want 3", len(fields))
	}
	if fields[0].Name != "Host" || fields[0].Value != "example.com" {
		t.Errorf("first field = %+v", fields[0])
	}
}

func TestHeaderStringGroupOrder(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("Content-Length", "5")
	h.Set("Connection", "close")
	h.Set("Host", "example.com")
	h.Set("X-Custom", "v")

	s := h.String()
	connIdx := indexOf(s, "Connection:")
	hostIdx := indexOf(s, "Host:")
	clenIdx := indexOf(s, "Content-Length:")
	xIdx := indexOf(s, "X-Custom:")
	if !(connIdx < hostIdx && hostIdx < clenIdx && clenIdx < xIdx) {
		t.Errorf("String() group order wrong: general=%d request=%d entity=%d none=%d", connIdx, hostIdx, clenIdx, xIdx)
	}
	if s[len(s)-4:] != "\r\n\r\n" {
		t.Errorf("String() does not end with blank-line terminator: %q", s[len(s)-8:])
	}
}

func TestHeaderFlat(t *testing.T) {
	h := NewHeader(KindServer, false)
	h.Set("Content-Length", "0")
	b, err := h.Flat(1, 1, "200 OK")
	if err != nil {
		t.Fatalf("Flat: %v", err)
	}
	if string(b[:9]) != "HTTP/1.1 " {
		t.Errorf("Flat() head = %q", b[:9])
	}
}

func TestHeaderAsDict(t *testing.T) {
	h := NewHeader(KindBoth, false)
	h.Set("Host", "example.com")
	d := h.AsDict()
	if d["Host"] != "example.com" {
		t.Errorf("AsDict()[Host] = %q", d["Host"])
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
