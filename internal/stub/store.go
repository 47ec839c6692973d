package stub

import (
	"fmt"
	"sync"

	"github.com/MikhailRaia/url-shortener-client/internal/generator"
)

// CodeLength is the length of generated short codes.
const CodeLength = 6

const maxAttempts = 5

// Store keeps short codes in memory. A URL shortened twice gets the same code.
type Store struct {
	mu     sync.RWMutex
	byCode map[string]string
	byURL  map[string]string
	gen    func(length int) (string, error)
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		byCode: make(map[string]string),
		byURL:  make(map[string]string),
		gen:    generator.GenerateID,
	}
}

// Save returns the code for originalURL, generating one on first use.
func (s *Store) Save(originalURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.byURL[originalURL]; ok {
		return code, nil
	}

	for i := 0; i < maxAttempts; i++ {
		code, err := s.gen(CodeLength)
		if err != nil {
			return "", err
		}
		if _, taken := s.byCode[code]; taken {
			continue
		}

		s.byCode[code] = originalURL
		s.byURL[originalURL] = code
		return code, nil
	}

	return "", fmt.Errorf("no free code after %d attempts", maxAttempts)
}

// Get returns the original URL stored under code.
func (s *Store) Get(code string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	originalURL, ok := s.byCode[code]
	return originalURL, ok
}
