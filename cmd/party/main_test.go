package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/party-go/party/utils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func init() {
	cli.OsExiter = func(int) {}
	cli.ErrWriter = io.Discard
}

func runParty(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv(config.EnvUrl, "")

	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	err := app.Run(append([]string{"party", "--url", server.URL + "/api"}, args...))
	return out.String(), err
}

func TestReposCsv(t *testing.T) {
	out, err := runParty(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/repositories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"key": "libs-release-local"}, {"key": "jcenter"}]`))
	}, "--format", "csv", "repos")
	require.NoError(t, err)
	assert.Equal(t, "key\nlibs-release-local\njcenter\n", out)
}

func TestSetPropsCredentials(t *testing.T) {
	_, err := runParty(t, func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "password", password)
		assert.Equal(t, "properties=a=1|b=2", r.URL.RawQuery)
		w.WriteHeader(http.StatusNoContent)
	}, "--user", "admin", "--password", "password", "set-props", "repo/a.rpm", "a=1;b=2")
	require.NoError(t, err)
}

func TestWrongNumberOfArguments(t *testing.T) {
	_, err := runParty(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}, "find")
	assert.ErrorContains(t, err, "Wrong number of arguments")
}

func TestUnknownFormat(t *testing.T) {
	_, err := runParty(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"key": "repo"}]`))
	}, "--format", "xml", "repos")
	assert.ErrorContains(t, err, "Unknown output format")
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitNames(" a, ,b"))
	assert.Nil(t, splitNames(""))
}
