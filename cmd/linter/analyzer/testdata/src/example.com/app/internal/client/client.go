package client

import (
	"net/http"
	"os"
)

func Fetch(u string) (*http.Response, error) {
	return http.Get(u)
}

func Do(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

func Quit() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}
