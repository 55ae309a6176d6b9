package cmdlib

import (
	"bufio"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const httpOnlyPrefix = "#HttpOnly_"

// FileCookie is a single record of a cookie jar file
type FileCookie struct {
	Domain string
	Cookie *http.Cookie
}

// ParseCookieFile parses a tab separated cookie jar file,
// one cookie per line: domain, subdomains flag, path, secure flag, expiry, name, value
func ParseCookieFile(r io.Reader) ([]FileCookie, error) {
	var result []FileCookie
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, httpOnlyPrefix) {
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			Lerr("skipping cookie record with %d fields", len(fields))
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			Lerr("cannot parse cookie expiry %q, %v", fields[4], err)
			continue
		}
		cookie := &http.Cookie{
			Name:   fields[5],
			Value:  fields[6],
			Path:   fields[2],
			Domain: fields[0],
			Secure: fields[3] == "TRUE",
		}
		if expiry > 0 {
			cookie.Expires = time.Unix(expiry, 0)
		}
		result = append(result, FileCookie{Domain: strings.TrimPrefix(fields[0], "."), Cookie: cookie})
	}
	return result, scanner.Err()
}

// LoadCookieFile loads cookies from a jar file into the client's cookie jar
func LoadCookieFile(jar http.CookieJar, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer CloseBody(file)
	cookies, err := ParseCookieFile(file)
	if err != nil {
		return 0, err
	}
	byDomain := map[string][]*http.Cookie{}
	for _, c := range cookies {
		byDomain[c.Domain] = append(byDomain[c.Domain], c.Cookie)
	}
	for domain, cs := range byDomain {
		scheme := "http"
		if cs[0].Secure {
			scheme = "https"
		}
		jar.SetCookies(&url.URL{Scheme: scheme, Host: domain, Path: "/"}, cs)
	}
	return len(cookies), nil
}
