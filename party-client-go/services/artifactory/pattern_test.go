package artifactory

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByPatternInvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		params   PatternSearchParams
		argument string
	}{
		{"empty pattern", PatternSearchParams{}, "pattern"},
		{"unknown repo type", PatternSearchParams{Pattern: "a.rpm", RepoType: "distribution"}, "repo type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := newMockArtifactory(t)
			requester := mock.requester(t)
			ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

			_, err := ps.FindByPattern(test.params)
			var invalid *InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, test.argument, invalid.Argument)
			assert.Empty(t, mock.recorded())
		})
	}
}

// mockPatternRepo serves a single repository holding two files at depth 1.
func mockPatternRepo(mock *mockArtifactory) {
	mock.respondWith("repositories", http.StatusOK, `[{"key": "libs-release-local", "type": "LOCAL"}]`)
	mock.handle("search/pattern", func(r *http.Request) (int, string) {
		if r.URL.Query().Get("pattern") == "libs-release-local:*/*ivy*" {
			return http.StatusOK, `{"repoUri": "http://localhost/api/libs-release-local", "sourcePattern": "libs-release-local:*/*ivy*", "files": ["org/ivy-1.0.xml", "org/ivy-1.1.xml"]}`
		}
		return http.StatusOK, `{"repoUri": "http://localhost/api/libs-release-local", "files": []}`
	})
}

func TestFindByPattern(t *testing.T) {
	for _, threads := range []int{1, 3} {
		mock := newMockArtifactory(t)
		mockPatternRepo(mock)
		requester := mock.requester(t)
		ps := NewPatternSearchService(requester, NewRepositoriesService(requester))
		ps.Threads = threads

		result, err := ps.FindByPattern(PatternSearchParams{Pattern: "ivy"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"http://localhost/api/libs-release-local/org/ivy-1.0.xml",
			"http://localhost/api/libs-release-local/org/ivy-1.1.xml",
		}, result.Files)

		// One listing plus one search per depth.
		requests := mock.recorded()
		assert.Len(t, requests, 1+DefaultMaxDepth)
	}
}

func TestFindByPatternSingleRepo(t *testing.T) {
	mock := newMockArtifactory(t)
	mockPatternRepo(mock)
	requester := mock.requester(t)
	ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

	result, err := ps.FindByPattern(PatternSearchParams{Pattern: "*ivy*", Repo: "libs-release-local", MaxDepth: 2})
	require.NoError(t, err)
	assert.Len(t, result.Files, 2)

	var patterns []string
	for _, request := range mock.recorded() {
		assert.NotEqual(t, "/api/repositories", request.Path)
		query, err := url.ParseQuery(request.Query)
		require.NoError(t, err)
		patterns = append(patterns, query.Get("pattern"))
	}
	assert.ElementsMatch(t, []string{"libs-release-local:*ivy*", "libs-release-local:*/*ivy*"}, patterns)
}

func TestFindByPatternRepoType(t *testing.T) {
	mock := newMockArtifactory(t)
	mockPatternRepo(mock)
	requester := mock.requester(t)
	ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

	_, err := ps.FindByPattern(PatternSearchParams{Pattern: "ivy", RepoType: LOCAL, MaxDepth: 1})
	assert.ErrorIs(t, err, ErrNoResults)
	requests := mock.recorded()
	require.NotEmpty(t, requests)
	assert.Equal(t, "type=local", requests[0].Query)
}

func TestFindByPatternNoResults(t *testing.T) {
	mock := newMockArtifactory(t)
	mock.respondWith("search/pattern", http.StatusOK, `{}`)
	requester := mock.requester(t)
	ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

	result, err := ps.FindByPattern(PatternSearchParams{Pattern: "ivy", Repo: "repo"})
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Nil(t, result)
}

func TestFindByPatternFailure(t *testing.T) {
	mock := newMockArtifactory(t)
	mock.respondWith("search/pattern", http.StatusBadRequest, `{"errors": [{"status": 400}]}`)
	requester := mock.requester(t)
	ps := NewPatternSearchService(requester, NewRepositoriesService(requester))
	ps.Threads = 2

	_, err := ps.FindByPattern(PatternSearchParams{Pattern: "ivy", Repo: "repo", MaxDepth: 3})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
}

func TestFindByPatternEscapesQuery(t *testing.T) {
	for _, pattern := range []string{"my file", "lib#1&x=y"} {
		t.Run(pattern, func(t *testing.T) {
			mock := newMockArtifactory(t)
			mock.handle("search/pattern", func(r *http.Request) (int, string) {
				assert.Equal(t, "repo:*"+pattern+"*", r.URL.Query().Get("pattern"))
				return http.StatusOK, `{"repoUri": "http://localhost/api/repo", "files": ["` + pattern + `.txt"]}`
			})
			requester := mock.requester(t)
			ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

			result, err := ps.FindByPattern(PatternSearchParams{Pattern: pattern, Repo: "repo", MaxDepth: 1})
			require.NoError(t, err)
			assert.Equal(t, []string{"http://localhost/api/repo/" + pattern + ".txt"}, result.Files)
		})
	}
}

func TestFindByPatternNullFiles(t *testing.T) {
	mock := newMockArtifactory(t)
	mock.handle("search/pattern", func(r *http.Request) (int, string) {
		if r.URL.Query().Get("pattern") == "repo:*/*ivy*" {
			return http.StatusOK, `{"repoUri": "http://localhost/api/repo", "files": ["org/ivy-1.0.xml", "org/ivy-1.1.xml"]}`
		}
		return http.StatusOK, `{"repoUri": "http://localhost/api/repo", "files": null}`
	})
	requester := mock.requester(t)
	ps := NewPatternSearchService(requester, NewRepositoriesService(requester))

	result, err := ps.FindByPattern(PatternSearchParams{Pattern: "ivy", Repo: "repo", MaxDepth: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost/api/repo/org/ivy-1.0.xml", "http://localhost/api/repo/org/ivy-1.1.xml"}, result.Files)
}

func TestParsePatternResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"no repo uri", `{"files": ["a"]}`, nil},
		{"no files", `{"repoUri": "r"}`, nil},
		{"null files", `{"repoUri": "r", "files": null}`, nil},
		{"empty files", `{"repoUri": "r", "files": []}`, nil},
		{"files", `{"repoUri": "r", "files": ["a", "b/c"]}`, []string{"r/a", "r/b/c"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			files, err := parsePatternResponse([]byte(test.body))
			require.NoError(t, err)
			assert.Equal(t, test.expected, files)
		})
	}
	_, err := parsePatternResponse([]byte(`{"repoUri": "r", "files": "a"}`))
	assert.Error(t, err)
}

func TestBookendGlobs(t *testing.T) {
	assert.Equal(t, "*ivy*", bookendGlobs("ivy"))
	assert.Equal(t, "*ivy*", bookendGlobs("*ivy"))
	assert.Equal(t, "*ivy*", bookendGlobs("ivy*"))
	assert.Equal(t, "*ivy*", bookendGlobs("*ivy*"))
	assert.Equal(t, "*", bookendGlobs("*"))
}

func TestDepthPatterns(t *testing.T) {
	assert.Equal(t, []string{"", "*/", "*/*/"}, depthPatterns(3))
	assert.Len(t, depthPatterns(DefaultMaxDepth), DefaultMaxDepth)
}
