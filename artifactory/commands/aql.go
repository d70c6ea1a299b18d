package commands

import (
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/artifactory/utils"
	"github.com/party-go/party/party-client-go/services/artifactory"
)

// Aql runs the query described by an AQL spec file.
func Aql(specFilePath string, specVars map[string]string, conf *CommandConfiguration) (*artifactory.AqlResult, error) {
	spec, err := utils.CreateAqlSpecFromFile(specFilePath, specVars)
	if err != nil {
		return nil, err
	}
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	log.Info("Searching artifacts...")
	return servicesManager.RunAql(spec.ToBuilder())
}
