package cmdlib

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Client is an HTTP client with its source address
type Client struct {
	Client *http.Client
	Addr   net.Addr
}

// NoRedirect tells HTTP client to not to redirect
func NoRedirect(_ *http.Request, _ []*http.Request) error { return http.ErrUseLastResponse }

// HTTPClientWithTimeoutAndAddress returns an HTTP client bound to a specific source IP address
func HTTPClientWithTimeoutAndAddress(timeoutSeconds int, address string, cookies bool) *Client {
	addr := &net.TCPAddr{IP: net.ParseIP(address)}
	dialer := &net.Dialer{
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
		KeepAlive: time.Duration(timeoutSeconds) * time.Second,
		LocalAddr: addr,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: time.Duration(timeoutSeconds) * time.Second,
	}
	client := &http.Client{
		CheckRedirect: NoRedirect,
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		Transport:     transport,
	}
	if cookies {
		jar, err := cookiejar.New(nil)
		CheckErr(err)
		client.Jar = jar
	}
	return &Client{Client: client, Addr: addr}
}

// HTTPClientWithTimeout returns an HTTP client
func HTTPClientWithTimeout(timeoutSeconds int, cookies bool) *Client {
	return HTTPClientWithTimeoutAndAddress(timeoutSeconds, "", cookies)
}
