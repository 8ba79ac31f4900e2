package ai

import (
	"context"
	"sync"
)

type fakeGenerator struct {
	mu      sync.Mutex
	json    string
	image   string
	err     error
	prompts []string
	schemas []Schema
	block   chan struct{}
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema Schema) ([]byte, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.json), nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.image, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
