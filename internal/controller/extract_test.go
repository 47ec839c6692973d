package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short URL with trailing slash", input: "https://x.io/abc/", want: "abc"},
		{name: "bare code", input: "abc", want: "abc"},
		{name: "host only", input: "https://x.io/", want: ""},
		{name: "host without slash", input: "https://x.io", want: ""},
		{name: "nested path", input: "http://localhost:8080/api/expand/xyz", want: "xyz"},
		{name: "many trailing slashes", input: "https://x.io/abc///", want: "abc"},
		{name: "query is ignored", input: "https://x.io/abc?utm=1", want: "abc"},
		{name: "surrounding spaces", input: "  abc  ", want: "abc"},
		{name: "empty", input: "   ", want: ""},
		{name: "host and port without scheme", input: "localhost:8080/abc", want: "abc"},
		{name: "not a URL", input: "a b", want: "a b"},
		{name: "relative path", input: "/abc", want: "/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCode(tt.input))
		})
	}
}
