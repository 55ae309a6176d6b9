package cmdlib

import (
	"context"
	"io"
)

// CheckErr panics on an error
func CheckErr(err error) {
	if err != nil {
		panic(err)
	}
}

// CloseBody closes request body
func CloseBody(body io.Closer) {
	err := body.Close()
	if err == context.Canceled {
		return
	}
	if err == context.DeadlineExceeded {
		return
	}
	CheckErr(err)
}
