package commands

import (
	"github.com/party-go/party/party-client-go/services/artifactory"
)

func FileInfo(filename string, conf *CommandConfiguration) (*artifactory.FileInfo, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	return servicesManager.GetFileInfo(filename)
}

func FileStats(filename string, conf *CommandConfiguration) (*artifactory.FileStats, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	return servicesManager.GetFileStats(filename)
}

func StorageInfo(conf *CommandConfiguration) (*artifactory.StorageInfo, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	return servicesManager.GetStorageInfo()
}

type RepositoryResult struct {
	Key string `json:"key" csv:"key"`
}

func Repos(repoType artifactory.RepoType, conf *CommandConfiguration) ([]RepositoryResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	keys, err := servicesManager.GetRepositories(repoType)
	if err != nil {
		return nil, err
	}
	result := make([]RepositoryResult, len(keys))
	for i, key := range keys {
		result[i] = RepositoryResult{Key: key}
	}
	return result, nil
}
