package cmdlib

import (
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var cookieFile = strings.Join([]string{
	"# Netscape HTTP Cookie File",
	"",
	".cam4.com\tTRUE\t/\tTRUE\t2000000000\tsessionId\tabc123",
	"#HttpOnly_.cam4.com\tTRUE\t/\tTRUE\t2000000000\tauthToken\txyz",
	"broken line without tabs",
	"www.example.com\tFALSE\t/\tFALSE\t0\tplain\tv",
}, "\n")

func TestParseCookieFile(t *testing.T) {
	cookies, err := ParseCookieFile(strings.NewReader(cookieFile))
	if err != nil {
		t.Errorf("unexpected error, %v", err)
	}
	if len(cookies) != 3 {
		t.Errorf("expected 3 cookies, got %d", len(cookies))
	}
	if cookies[0].Domain != "cam4.com" || cookies[0].Cookie.Name != "sessionId" {
		t.Error("unexpected results")
	}
	if cookies[1].Cookie.Name != "authToken" {
		t.Error("HttpOnly record should be parsed")
	}
	if cookies[2].Domain != "www.example.com" || cookies[2].Cookie.Secure {
		t.Error("unexpected results")
	}
}

func TestLoadCookieFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(cookieFile), 0o600); err != nil {
		t.Fatal(err)
	}
	jar, _ := cookiejar.New(nil)
	n, err := LoadCookieFile(jar, path)
	if err != nil {
		t.Errorf("unexpected error, %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cookies, got %d", n)
	}
	u, _ := url.Parse("https://cam4.com/")
	if len(jar.Cookies(u)) == 0 {
		t.Error("expected cookies for cam4.com")
	}
}

func TestMain(m *testing.M) {
	Verbosity = SilentVerbosity
	os.Exit(m.Run())
}
