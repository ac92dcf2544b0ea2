package main

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/jonathan/jobad-assistant/internal/llm"
)

type fakeClient struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
	last  *llm.CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req *llm.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	return f.reply, f.err
}

func (f *fakeClient) Close() error { return nil }

const adJSON = `{"titolo":"Addetto magazzino","abstract":"Ruolo operativo.","responsabilita":["Carico merci"],"qualifiche":["Patentino"],"livelli_studio":["Diploma"],"benefit":[],"dettagli":{"sede":"","contratto":""},"annuncio_completo":"Testo completo."}`

const adReply = "```json\n" + adJSON + "\n```"

// withEnv replaces the environment lookup for the duration of the test.
func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	prev := getenv
	getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { getenv = prev })
}

// withClient makes setup hand out client regardless of the credential.
func withClient(t *testing.T, client llm.Client) {
	t.Helper()
	prev := newClient
	newClient = func(context.Context, *llm.Config, string) (llm.Client, error) { return client, nil }
	t.Cleanup(func() { newClient = prev })
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	}
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
