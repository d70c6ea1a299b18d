package services

import (
	"github.com/party-go/party/party-client-go/services/artifactory"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
)

func (builder *ArtifactoryServicesConfigBuilder) SetUrl(url string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().Url = url
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetArtDetails(artDetails *auth.ArtifactoryAuthConfiguration) *ArtifactoryServicesConfigBuilder {
	builder.ArtifactoryAuthConfiguration = artDetails
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetUser(user string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().User = user
	return builder
}

// SetPassword expects a base64 encoded password.
func (builder *ArtifactoryServicesConfigBuilder) SetPassword(password string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().Password = password
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetApiKey(apiKey string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().ApiKey = apiKey
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetHeaders(headers map[string]string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().Headers = headers
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetCertificatesPath(certificatesPath string) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().CertificatesPath = certificatesPath
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetInsecureTls(insecureTls bool) *ArtifactoryServicesConfigBuilder {
	builder.artDetails().InsecureTls = insecureTls
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetSearchName(searchName string) *ArtifactoryServicesConfigBuilder {
	builder.searchName = searchName
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetSearchProp(searchProp string) *ArtifactoryServicesConfigBuilder {
	builder.searchProp = searchProp
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetSearchRepos(searchRepos string) *ArtifactoryServicesConfigBuilder {
	builder.searchRepos = searchRepos
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetNumOfThreadPerOperation(threads int) *ArtifactoryServicesConfigBuilder {
	builder.threads = threads
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetMaxDepth(maxDepth int) *ArtifactoryServicesConfigBuilder {
	builder.maxDepth = maxDepth
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) SetDryRun(dryRun bool) *ArtifactoryServicesConfigBuilder {
	builder.isDryRun = dryRun
	return builder
}

func (builder *ArtifactoryServicesConfigBuilder) artDetails() *auth.ArtifactoryAuthConfiguration {
	if builder.ArtifactoryAuthConfiguration == nil {
		builder.ArtifactoryAuthConfiguration = &auth.ArtifactoryAuthConfiguration{}
	}
	return builder.ArtifactoryAuthConfiguration
}

func (builder *ArtifactoryServicesConfigBuilder) Build() (ArtifactoryConfig, error) {
	c := &artifactoryServicesConfig{}
	c.ArtifactoryAuthConfiguration = builder.artDetails()
	c.isDryRun = builder.isDryRun

	c.searchName = valueOrDefault(builder.searchName, artifactory.DefaultSearchName)
	c.searchProp = valueOrDefault(builder.searchProp, artifactory.DefaultSearchProp)
	c.searchRepos = valueOrDefault(builder.searchRepos, artifactory.DefaultSearchRepos)

	if builder.threads <= 0 {
		c.threads = 1
	} else {
		c.threads = builder.threads
	}

	if builder.maxDepth <= 0 {
		c.maxDepth = artifactory.DefaultMaxDepth
	} else {
		c.maxDepth = builder.maxDepth
	}
	return c, nil
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

type ArtifactoryServicesConfigBuilder struct {
	*auth.ArtifactoryAuthConfiguration
	searchName  string
	searchProp  string
	searchRepos string
	threads     int
	maxDepth    int
	isDryRun    bool
}

type artifactoryServicesConfig struct {
	*auth.ArtifactoryAuthConfiguration
	searchName  string
	searchProp  string
	searchRepos string
	threads     int
	maxDepth    int
	isDryRun    bool
}

type ArtifactoryConfig interface {
	GetUrl() string
	GetCertificatesPath() string
	IsInsecureTls() bool
	GetSearchName() string
	GetSearchProp() string
	GetSearchRepos() string
	GetNumOfThreadPerOperation() int
	GetMaxDepth() int
	IsDryRun() bool
	GetArtDetails() *auth.ArtifactoryAuthConfiguration
}

func (config *artifactoryServicesConfig) IsDryRun() bool {
	return config.isDryRun
}

func (config *artifactoryServicesConfig) GetCertificatesPath() string {
	return config.CertificatesPath
}

func (config *artifactoryServicesConfig) IsInsecureTls() bool {
	return config.InsecureTls
}

func (config *artifactoryServicesConfig) GetSearchName() string {
	return config.searchName
}

func (config *artifactoryServicesConfig) GetSearchProp() string {
	return config.searchProp
}

func (config *artifactoryServicesConfig) GetSearchRepos() string {
	return config.searchRepos
}

func (config *artifactoryServicesConfig) GetNumOfThreadPerOperation() int {
	return config.threads
}

func (config *artifactoryServicesConfig) GetMaxDepth() int {
	return config.maxDepth
}

func (config *artifactoryServicesConfig) GetArtDetails() *auth.ArtifactoryAuthConfiguration {
	return config.ArtifactoryAuthConfiguration
}

// ArtifactoryServicesManager is the entry point for all Artifactory operations.
type ArtifactoryServicesManager struct {
	requester *utils.Requester
	config    ArtifactoryConfig
}

func NewArtifactoryService(config ArtifactoryConfig) (*ArtifactoryServicesManager, error) {
	client, err := utils.NewHttpClient(config.GetArtDetails())
	if err != nil {
		return nil, err
	}
	requester := utils.NewRequester(client, config.GetArtDetails())
	requester.DryRun = config.IsDryRun()
	return &ArtifactoryServicesManager{requester: requester, config: config}, nil
}

func (sm *ArtifactoryServicesManager) GetConfig() ArtifactoryConfig {
	return sm.config
}

// Query sends a raw request, e.g. Query("api/system/ping", "get", nil).
func (sm *ArtifactoryServicesManager) Query(endpoint, queryType string, content []byte) ([]byte, error) {
	_, body, err := sm.requester.Send(queryType, endpoint, content, nil)
	return body, err
}

func (sm *ArtifactoryServicesManager) FindByName(name string) (*artifactory.NameSearchResult, error) {
	return sm.newSearchService().FindByName(name)
}

func (sm *ArtifactoryServicesManager) FindByProperties(props map[string]string) (*artifactory.PropertySearchResult, error) {
	return sm.newSearchService().FindByProperties(props)
}

func (sm *ArtifactoryServicesManager) FindByPattern(params artifactory.PatternSearchParams) (*artifactory.PatternSearchResult, error) {
	patternService := artifactory.NewPatternSearchService(sm.requester, sm.newRepositoriesService())
	patternService.Threads = sm.config.GetNumOfThreadPerOperation()
	if params.MaxDepth <= 0 {
		params.MaxDepth = sm.config.GetMaxDepth()
	}
	return patternService.FindByPattern(params)
}

func (sm *ArtifactoryServicesManager) GetProps(fileUrl string, names ...string) (*artifactory.PropertiesResult, error) {
	return artifactory.NewPropsService(sm.requester).GetProps(fileUrl, names...)
}

func (sm *ArtifactoryServicesManager) SetProps(fileUrl string, props map[string]string) error {
	return artifactory.NewPropsService(sm.requester).SetProps(fileUrl, props)
}

func (sm *ArtifactoryServicesManager) DeleteProps(fileUrl string, names ...string) error {
	return artifactory.NewPropsService(sm.requester).DeleteProps(fileUrl, names...)
}

func (sm *ArtifactoryServicesManager) GetFileInfo(filename string) (*artifactory.FileInfo, error) {
	return artifactory.NewStorageService(sm.requester).GetFileInfo(filename)
}

func (sm *ArtifactoryServicesManager) GetFileStats(filename string) (*artifactory.FileStats, error) {
	return artifactory.NewStorageService(sm.requester).GetFileStats(filename)
}

func (sm *ArtifactoryServicesManager) GetStorageInfo() (*artifactory.StorageInfo, error) {
	return artifactory.NewStorageService(sm.requester).GetStorageInfo()
}

func (sm *ArtifactoryServicesManager) GetRepositories(repoType artifactory.RepoType) ([]string, error) {
	return sm.newRepositoriesService().GetRepositories(repoType)
}

func (sm *ArtifactoryServicesManager) RunAql(builder *artifactory.AqlBuilder) (*artifactory.AqlResult, error) {
	aql, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return artifactory.NewAqlService(sm.requester).RunQuery(aql)
}

func (sm *ArtifactoryServicesManager) newSearchService() *artifactory.SearchService {
	searchService := artifactory.NewSearchService(sm.requester)
	searchService.SearchName = sm.config.GetSearchName()
	searchService.SearchProp = sm.config.GetSearchProp()
	return searchService
}

func (sm *ArtifactoryServicesManager) newRepositoriesService() *artifactory.RepositoriesService {
	reposService := artifactory.NewRepositoriesService(sm.requester)
	reposService.SearchRepos = sm.config.GetSearchRepos()
	return reposService
}
