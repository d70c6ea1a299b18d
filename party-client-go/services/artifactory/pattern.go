package artifactory

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/jfrog/gofrog/parallel"
	clientutils "github.com/jfrog/jfrog-client-go/utils"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const (
	SearchPattern   = "search/pattern"
	DefaultMaxDepth = 10
)

type PatternSearchService struct {
	requester *utils.Requester
	repos     *RepositoriesService
	Threads   int
}

func NewPatternSearchService(requester *utils.Requester, repos *RepositoriesService) *PatternSearchService {
	return &PatternSearchService{requester: requester, repos: repos, Threads: 1}
}

type PatternSearchParams struct {
	// Pattern is a file name or partial file name, globs allowed.
	Pattern string
	// Repo limits the search to one repository. When empty, all repositories of RepoType are searched.
	Repo     string
	RepoType RepoType
	// MaxDepth is the number of directory levels searched, starting at the repository root. Defaults to DefaultMaxDepth.
	MaxDepth int
}

type PatternSearchResult struct {
	Files []string
}

// FindByPattern queries every repository at every depth and aggregates all matches.
// Files are ordered by repository, then by depth.
func (ps *PatternSearchService) FindByPattern(params PatternSearchParams) (*PatternSearchResult, error) {
	if params.Pattern == "" {
		return nil, errorutils.CheckError(invalidArgument("pattern", "no filename specified"))
	}
	if !params.RepoType.IsValid() {
		return nil, errorutils.CheckError(invalidArgument("repo type", "'%s' (valid types: local, virtual, remote or none)", params.RepoType))
	}
	maxDepth := params.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	pattern := bookendGlobs(params.Pattern)

	var repos []string
	if params.Repo != "" {
		repos = []string{params.Repo}
	} else {
		var err error
		if repos, err = ps.repos.GetRepositories(params.RepoType); err != nil {
			return nil, err
		}
	}

	log.Info("Searching artifacts by pattern", pattern, "in", strconv.Itoa(len(repos)), "repositories...")
	matches, err := ps.scan(repos, depthPatterns(maxDepth), pattern)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		files = append(files, m...)
	}
	if len(files) == 0 {
		return nil, ErrNoResults
	}
	utils.LogSearchResults(len(files))
	return &PatternSearchResult{Files: files}, nil
}

// scan returns one slot of matches per (repo, depth), in repo-major order.
// Each worker sends through its own requester, the http client is not safe for concurrent use.
func (ps *PatternSearchService) scan(repos, depths []string, pattern string) ([][]string, error) {
	threads := ps.Threads
	if threads < 1 {
		threads = 1
	}
	requesters, err := ps.requesterPool(threads)
	if err != nil {
		return nil, err
	}
	matches := make([][]string, len(repos)*len(depths))
	runner := parallel.NewBounedRunner(threads, true)
	errorsQueue := clientutils.NewErrorsQueue(1)
	go func() {
		defer runner.Done()
		for i, repo := range repos {
			for j, depth := range depths {
				slot := i*len(depths) + j
				query := SearchPattern + "?pattern=" + url.QueryEscape(repo+":"+depth+pattern)
				task := func(int) error {
					requester := <-requesters
					defer func() { requesters <- requester }()
					files, err := searchPattern(requester, query)
					if err != nil {
						return err
					}
					matches[slot] = files
					return nil
				}
				if _, err := runner.AddTaskWithError(task, errorsQueue.AddError); err != nil {
					errorsQueue.AddError(err)
					return
				}
			}
		}
	}()
	runner.Run()
	if err := errorsQueue.GetError(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (ps *PatternSearchService) requesterPool(size int) (chan *utils.Requester, error) {
	pool := make(chan *utils.Requester, size)
	pool <- ps.requester
	for i := 1; i < size; i++ {
		requester, err := ps.requester.Clone()
		if err != nil {
			return nil, err
		}
		pool <- requester
	}
	return pool, nil
}

func searchPattern(requester *utils.Requester, query string) ([]string, error) {
	_, body, err := requester.Get(query)
	if err != nil {
		return nil, err
	}
	return parsePatternResponse(body)
}

// parsePatternResponse qualifies each file with the response's repoUri.
// A response without repoUri, or with missing or null files, contributes nothing.
func parsePatternResponse(body []byte) ([]string, error) {
	repoUri, err := jsonparser.GetString(body, "repoUri")
	if err == jsonparser.KeyPathNotFoundError {
		return nil, nil
	}
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	filesValue, dataType, _, err := jsonparser.Get(body, "files")
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	var files []string
	var parseErr error
	_, err = jsonparser.ArrayEach(filesValue, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		file, err := jsonparser.ParseString(value)
		if err != nil {
			parseErr = err
			return
		}
		files = append(files, repoUri+"/"+file)
	})
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	return files, errorutils.CheckError(parseErr)
}

// bookendGlobs adds a leading and a trailing '*' unless already present. Artifactory rejects doubled globs.
func bookendGlobs(pattern string) string {
	if !strings.HasSuffix(pattern, "*") {
		pattern += "*"
	}
	if !strings.HasPrefix(pattern, "*") {
		pattern = "*" + pattern
	}
	return pattern
}

// depthPatterns returns "", "*/", "*/*/", ... with maxDepth entries.
func depthPatterns(maxDepth int) []string {
	patterns := make([]string, maxDepth)
	for depth := range patterns {
		patterns[depth] = strings.Repeat("*/", depth)
	}
	return patterns
}
