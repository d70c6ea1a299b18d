package artifactory

import (
	"github.com/buger/jsonparser"
	"github.com/jfrog/gofrog/datastructures"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const DefaultSearchRepos = "repositories"

const (
	ANY     RepoType = ""
	LOCAL   RepoType = "local"
	REMOTE  RepoType = "remote"
	VIRTUAL RepoType = "virtual"
)

type RepoType string

func (rt RepoType) IsValid() bool {
	switch rt {
	case ANY, LOCAL, REMOTE, VIRTUAL:
		return true
	}
	return false
}

type RepositoriesService struct {
	requester   *utils.Requester
	SearchRepos string
}

func NewRepositoriesService(requester *utils.Requester) *RepositoriesService {
	return &RepositoriesService{requester: requester, SearchRepos: DefaultSearchRepos}
}

// GetRepositories returns the keys of all repositories of repoType, or of all repositories when repoType is ANY.
// The API accepts a single type per request.
func (rs *RepositoriesService) GetRepositories(repoType RepoType) ([]string, error) {
	if !repoType.IsValid() {
		return nil, errorutils.CheckError(invalidArgument("repo type", "'%s' (valid types: local, virtual, remote)", repoType))
	}
	query := rs.SearchRepos
	if repoType != ANY {
		query += "?type=" + string(repoType)
	}
	_, body, err := rs.requester.Get(query)
	if err != nil {
		return nil, err
	}
	repositories, err := parseRepositoryKeys(body)
	if err != nil {
		return nil, err
	}
	if len(repositories) == 0 {
		return nil, ErrNoResults
	}
	log.Debug("Found repositories:", repositories)
	return repositories, nil
}

func parseRepositoryKeys(body []byte) ([]string, error) {
	var repositories []string
	seen := datastructures.MakeSet[string]()
	var parseErr error
	_, err := jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		key, err := jsonparser.GetString(value, "key")
		if err != nil {
			if err != jsonparser.KeyPathNotFoundError {
				parseErr = err
			}
			return
		}
		if !seen.Exists(key) {
			seen.Add(key)
			repositories = append(repositories, key)
		}
	})
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	return repositories, errorutils.CheckError(parseErr)
}
