package mocks

import (
	"context"

	"promptbox/internal/llm/client"
)

type CompleterMock struct {
	CallAPIFunc func(ctx context.Context, prompt string, req client.Request) (string, error)
	Calls       int
	LastRequest client.Request
}

func (m *CompleterMock) CallAPI(ctx context.Context, prompt string, req client.Request) (string, error) {
	m.Calls++
	m.LastRequest = req
	if m.CallAPIFunc != nil {
		return m.CallAPIFunc(ctx, prompt, req)
	}
	return "", nil
}
