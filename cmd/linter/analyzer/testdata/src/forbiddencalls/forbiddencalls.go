package forbiddencalls

import (
	"log"
	"os"
)

func Shorten(url string) string {
	if url == "" {
		panic("empty url") // want "panic is forbidden"
	}
	return url
}

func LoadConfig(path string) {
	if path == "" {
		log.Fatal("no config") // want "log.Fatal is forbidden outside main function"
	}
}

func Abort() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func Fail(err error) {
	log.Fatalf("failed: %v", err) // want "log.Fatalf is forbidden outside main function"
}

type runner struct{}

func (runner) main() {
	os.Exit(2) // want "os.Exit is forbidden outside main function"
}

func Shadowed() {
	panic := func(string) {}
	panic("not the builtin")
}
