package api

import (
	"context"

	"github.com/jacobpatterson1549/codenames/ui/http"
)

type mockHTTPClient struct {
	DoFunc func(ctx context.Context, req http.Request) (*http.Response, error)
}

func (m mockHTTPClient) Do(ctx context.Context, req http.Request) (*http.Response, error) {
	return m.DoFunc(ctx, req)
}

type mockLog struct {
	ErrorFunc func(text string)
}

func (m mockLog) Error(text string) {
	m.ErrorFunc(text)
}
