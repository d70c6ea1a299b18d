package artifactory

import (
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const AqlApi = "search/aql"

type AqlService struct {
	requester *utils.Requester
}

func NewAqlService(requester *utils.Requester) *AqlService {
	return &AqlService{requester: requester}
}

type AqlRange struct {
	StartPos int `json:"start_pos"`
	EndPos   int `json:"end_pos"`
	Total    int `json:"total"`
	Limit    int `json:"limit,omitempty"`
}

type AqlResult struct {
	Results []map[string]interface{} `json:"results"`
	Range   AqlRange                 `json:"range"`
}

// RunQuery posts the statement as plain text. The configured headers are left untouched.
func (as *AqlService) RunQuery(aql Aql) (*AqlResult, error) {
	log.Debug("Searching Artifactory using AQL query:", aql.Statement())
	_, body, err := as.requester.Post(AqlApi, []byte(aql.Statement()), map[string]string{"Content-type": "text/plain"})
	if err != nil {
		return nil, err
	}
	result := &AqlResult{}
	if err = utils.Unmarshal(body, result); err != nil {
		return nil, err
	}
	utils.LogSearchResults(len(result.Results))
	return result, nil
}
