package httpcalls

import (
	"net/http"
	"net/url"
	"strings"
)

func Fetch(u string) (*http.Response, error) {
	return http.Get(u) // want "http.Get is forbidden outside internal/client, use the configured client"
}

func Probe(u string) (*http.Response, error) {
	return http.Head(u) // want "http.Head is forbidden outside internal/client, use the configured client"
}

func Send(u string) (*http.Response, error) {
	return http.Post(u, "application/json", strings.NewReader("{}")) // want "http.Post is forbidden outside internal/client, use the configured client"
}

func SendForm(u string) (*http.Response, error) {
	return http.PostForm(u, url.Values{}) // want "http.PostForm is forbidden outside internal/client, use the configured client"
}

func Do(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req) // want "http.DefaultClient is forbidden outside internal/client, use the configured client"
}

func Custom(req *http.Request) (*http.Response, error) {
	c := &http.Client{}
	return c.Do(req)
}

func Status() int {
	return http.StatusOK
}
