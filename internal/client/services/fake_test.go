package services

import (
	"context"
	"encoding/json"
)

// fakeClient implements client.Client. Responses are JSON strings keyed by
// "METHOD path"; every call is recorded.
type fakeClient struct {
	responses map[string]string
	errs      map[string]error

	calls  []string
	bodies map[string]any
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		responses: map[string]string{},
		errs:      map[string]error{},
		bodies:    map[string]any{},
	}
}

func (f *fakeClient) handle(method, path string, body any, out any) error {
	key := method + " " + path
	f.calls = append(f.calls, key)
	if body != nil {
		f.bodies[key] = body
	}
	if err := f.errs[key]; err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if resp, ok := f.responses[key]; ok {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeClient) Get(_ context.Context, path string, out any) error {
	return f.handle("GET", path, nil, out)
}

func (f *fakeClient) Post(_ context.Context, path string, body any, out any) error {
	return f.handle("POST", path, body, out)
}

func (f *fakeClient) Put(_ context.Context, path string, body any, out any) error {
	return f.handle("PUT", path, body, out)
}

func (f *fakeClient) Delete(_ context.Context, path string, out any) error {
	return f.handle("DELETE", path, nil, out)
}
