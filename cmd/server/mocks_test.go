package main

import (
	"context"
)

type mockBackgroundRunner func(ctx context.Context)

func (m mockBackgroundRunner) Run(ctx context.Context) {
	m(ctx)
}

type mockServerRunner struct {
	RunFunc  func() <-chan error
	StopFunc func(ctx context.Context) error
}

func (m mockServerRunner) Run() <-chan error {
	return m.RunFunc()
}

func (m mockServerRunner) Stop(ctx context.Context) error {
	return m.StopFunc(ctx)
}
