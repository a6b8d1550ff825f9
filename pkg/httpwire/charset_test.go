package httpwire

import "testing"

func TestEncodeDecodeLatin1RoundTrip(t *testing.T) {
	s := "GET /foo?bar=1 HTTP/1.1"
	b, err := EncodeLatin1(s)
	if err != nil {
		t.Fatalf("EncodeLatin1: %v", err)
	}
	got, err := DecodeLatin1(b)
	if err != nil {
		t.Fatalf("DecodeLatin1: %v", err)
	}
	if got != s {
		t.Errorf("round trip = %q, want %q", got, s)
	}
}

func TestQuoteHeaderValueTokenPassthrough(t *testing.T) {
	if got := QuoteHeaderValue("gzip", "", true); got != "gzip" {
		t.Errorf("QuoteHeaderValue(token) = %q, want gzip", got)
	}
}

func TestQuoteHeaderValueQuotesNonToken(t *testing.T) {
	got := QuoteHeaderValue(`has space`, "", true)
	if got != `"has space"` {
		t.Errorf("QuoteHeaderValue = %q, want \"has space\"", got)
	}
}

func TestUnquoteHeaderValue(t *testing.T) {
	if got := UnquoteHeaderValue(`"has space"`, false); got != "has space" {
		t.Errorf("UnquoteHeaderValue = %q", got)
	}
	if got := UnquoteHeaderValue("bare", false); got != "bare" {
		t.Errorf("UnquoteHeaderValue(unquoted) = %q, want unchanged", got)
	}
}

func TestUnquoteHeaderValueUNCFilename(t *testing.T) {
	in := `"\\server\share\file.txt"`
	got := UnquoteHeaderValue(in, true)
	if got != in {
		t.Errorf("UnquoteHeaderValue(UNC filename) = %q, want unchanged %q", got, in)
	}
}

func TestParseDictHeader(t *testing.T) {
	got := ParseDictHeader(`foo="is a fish", bar="as well", novalue`)
	want := map[string]string{"foo": "is a fish", "bar": "as well", "novalue": ""}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ParseDictHeader()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("ParseDictHeader() = %v, want %v", got, want)
	}
}

func TestParseHTTPListQuoteAware(t *testing.T) {
	items := parseHTTPList(`a, "b, c", d`)
	if len(items) != 3 {
		t.Fatalf("parseHTTPList = %v, want 3 items", items)
	}
	if items[1] != ` "b, c"` {
		t.Errorf("parseHTTPList[1] = %q, want quoted comma preserved", items[1])
	}
}
