package artifactory

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jfrog/jfrog-client-go/http/httpclient"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// mockArtifactory answers every request with the response registered for its API path, or 404.
type mockArtifactory struct {
	server    *httptest.Server
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]func(r *http.Request) (int, string)
}

func newMockArtifactory(t *testing.T) *mockArtifactory {
	mock := &mockArtifactory{responses: map[string]func(r *http.Request) (int, string){}}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.serve))
	t.Cleanup(mock.server.Close)
	return mock
}

func (mock *mockArtifactory) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	mock.mu.Lock()
	mock.requests = append(mock.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
		Header: r.Header.Clone(),
	})
	respond, ok := mock.responses[r.URL.Path]
	mock.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	status, content := respond(r)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(content))
}

// handle registers a response for an API path, relative to the API url.
func (mock *mockArtifactory) handle(apiPath string, respond func(r *http.Request) (int, string)) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.responses["/api/"+apiPath] = respond
}

func (mock *mockArtifactory) respondWith(apiPath string, status int, content string) {
	mock.handle(apiPath, func(*http.Request) (int, string) { return status, content })
}

func (mock *mockArtifactory) recorded() []recordedRequest {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]recordedRequest(nil), mock.requests...)
}

func (mock *mockArtifactory) apiUrl() string {
	return mock.server.URL + "/api"
}

func (mock *mockArtifactory) requester(t *testing.T) *utils.Requester {
	client, err := httpclient.ClientBuilder().SetRetries(0).Build()
	require.NoError(t, err)
	return utils.NewRequester(client, &auth.ArtifactoryAuthConfiguration{
		Url:      mock.apiUrl(),
		User:     "admin",
		Password: auth.EncodePassword("password"),
		Headers:  map[string]string{"Content-Type": "application/json"},
	})
}
