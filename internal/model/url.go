package model

// ShortenRequest is the body of POST /api/shorten.
type ShortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

// ShortenResponse covers the shapes backends use to return a short link.
type ShortenResponse struct {
	ShortURL string `json:"shortUrl,omitempty"`
	Short    string `json:"short,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Link returns the first non-empty of shortUrl, short and url.
func (r ShortenResponse) Link() string {
	return firstNonEmpty(r.ShortURL, r.Short, r.URL)
}

// ExpandResponse covers the shapes backends use to return an original URL.
type ExpandResponse struct {
	OriginalURL string `json:"originalUrl,omitempty"`
	URL         string `json:"url,omitempty"`
	Full        string `json:"full,omitempty"`
}

// Link returns the first non-empty of originalUrl, url and full.
func (r ExpandResponse) Link() string {
	return firstNonEmpty(r.OriginalURL, r.URL, r.Full)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
