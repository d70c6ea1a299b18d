package commands

import (
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/artifactory/utils"
	"github.com/party-go/party/party-client-go/services"
	"github.com/party-go/party/party-client-go/services/artifactory"
	"github.com/party-go/party/utils/config"
)

type SearchResult struct {
	Path string `json:"path,omitempty" csv:"path"`
}

// CommandConfiguration is shared by all commands.
type CommandConfiguration struct {
	ArtDetails *config.ArtifactoryDetails
	utils.ServiceOptions
}

func (conf *CommandConfiguration) createServiceManager() (*services.ArtifactoryServicesManager, error) {
	return utils.CreateDefaultServiceManager(conf.ArtDetails, conf.ServiceOptions)
}

func FindByName(name string, conf *CommandConfiguration) (*artifactory.NameSearchResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	log.Info("Searching artifacts...")
	return servicesManager.FindByName(name)
}

func FindByProps(props map[string]string, conf *CommandConfiguration) ([]SearchResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	log.Info("Searching artifacts...")
	result, err := servicesManager.FindByProperties(props)
	if err != nil {
		return nil, err
	}
	return toSearchResults(result.Files), nil
}

func FindByPattern(params artifactory.PatternSearchParams, conf *CommandConfiguration) ([]SearchResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	result, err := servicesManager.FindByPattern(params)
	if err != nil {
		return nil, err
	}
	return toSearchResults(result.Files), nil
}

func toSearchResults(paths []string) []SearchResult {
	result := make([]SearchResult, len(paths))
	for i, path := range paths {
		result[i] = SearchResult{Path: path}
	}
	return result
}
