package utils

import (
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/party-go/party/party-client-go/services"
	"github.com/party-go/party/utils/config"
)

// ServiceOptions are the knobs that do not belong to the server configuration.
type ServiceOptions struct {
	DryRun   bool
	Threads  int
	MaxDepth int
}

func CreateDefaultServiceManager(artDetails *config.ArtifactoryDetails, options ServiceOptions) (*services.ArtifactoryServicesManager, error) {
	if artDetails.Url == "" {
		return nil, errorutils.CheckErrorf("the Artifactory API url is not configured, use --url, %s or a configuration file", config.EnvUrl)
	}
	serviceConfig, err := (&services.ArtifactoryServicesConfigBuilder{}).
		SetArtDetails(artDetails.CreateArtAuthConfig()).
		SetSearchName(artDetails.SearchName).
		SetSearchProp(artDetails.SearchProp).
		SetSearchRepos(artDetails.SearchRepos).
		SetDryRun(options.DryRun).
		SetNumOfThreadPerOperation(options.Threads).
		SetMaxDepth(options.MaxDepth).
		Build()
	if err != nil {
		return nil, err
	}
	return services.NewArtifactoryService(serviceConfig)
}
