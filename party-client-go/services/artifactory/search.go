package artifactory

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const (
	DefaultSearchName = "search/artifact"
	DefaultSearchProp = "search/prop"
)

type SearchService struct {
	requester  *utils.Requester
	SearchName string
	SearchProp string
}

func NewSearchService(requester *utils.Requester) *SearchService {
	return &SearchService{requester: requester, SearchName: DefaultSearchName, SearchProp: DefaultSearchProp}
}

// SearchResultItem is one entry of a quick search or property search response.
type SearchResultItem map[string]interface{}

func (item SearchResultItem) GetUri() string {
	uri, _ := item["uri"].(string)
	return uri
}

type searchResponse struct {
	Results []SearchResultItem `json:"results"`
}

type NameSearchResult struct {
	Name    string
	Results []SearchResultItem
	Raw     json.RawMessage
}

// FindByName runs a quick search for an artifact file name.
func (ss *SearchService) FindByName(name string) (*NameSearchResult, error) {
	query := ss.SearchName + "?name=" + url.QueryEscape(name)
	log.Debug("Searching artifacts by name:", name)
	_, body, err := ss.requester.Get(query)
	if err != nil {
		return nil, err
	}
	response := searchResponse{}
	if err = utils.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if len(response.Results) < 1 {
		return nil, ErrNoResults
	}
	return &NameSearchResult{Name: name, Results: response.Results, Raw: json.RawMessage(body)}, nil
}

type PropertySearchResult struct {
	// Files holds the base name of every matched uri.
	Files   []string
	Count   int
	Results []SearchResultItem
	// Attributes merges the keys of all results. Later results win.
	Attributes map[string]interface{}
}

// FindByProperties searches artifacts whose properties match all of props.
func (ss *SearchService) FindByProperties(props map[string]string) (*PropertySearchResult, error) {
	query := ss.SearchProp + "?" + utils.EncodeParams(props)
	log.Debug("Searching artifacts by properties:", props)
	_, body, err := ss.requester.Get(query)
	if err != nil {
		return nil, err
	}
	response := searchResponse{}
	if err = utils.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, ErrNoResults
	}

	result := &PropertySearchResult{Results: response.Results, Attributes: map[string]interface{}{}}
	for _, item := range response.Results {
		for k, v := range item {
			result.Attributes[k] = v
		}
		result.Files = append(result.Files, baseName(item.GetUri()))
	}
	result.Count = len(result.Files)
	utils.LogSearchResults(result.Count)
	return result, nil
}

func baseName(uri string) string {
	if strings.TrimRight(uri, "/") == "" {
		return ""
	}
	return path.Base(uri)
}
