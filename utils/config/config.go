package config

import (
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
	"gopkg.in/yaml.v2"
)

const (
	EnvConfig   = "PARTY_CONFIG"
	EnvUrl      = "PARTY_URL"
	EnvUser     = "PARTY_USER"
	EnvPassword = "PARTY_PASSWORD"
	EnvApiKey   = "PARTY_API_KEY"

	DefaultConfigFile = ".party.yml"
)

// ArtifactoryDetails is the user facing configuration. Password is base64 encoded.
type ArtifactoryDetails struct {
	Url              string            `yaml:"artifactory_url,omitempty"`
	User             string            `yaml:"username,omitempty"`
	Password         string            `yaml:"password,omitempty"`
	ApiKey           string            `yaml:"api_key,omitempty"`
	Headers          map[string]string `yaml:"headers,omitempty"`
	SearchName       string            `yaml:"search_name,omitempty"`
	SearchProp       string            `yaml:"search_prop,omitempty"`
	SearchRepos      string            `yaml:"search_repos,omitempty"`
	CertificatesPath string            `yaml:"certbundle,omitempty"`
	InsecureTls      bool              `yaml:"insecure_tls,omitempty"`
}

// Merge fills the fields of details that are still unset with the values of other.
// Values already set are never overridden.
func (details *ArtifactoryDetails) Merge(other *ArtifactoryDetails) *ArtifactoryDetails {
	if other == nil {
		return details
	}
	details.Url = firstNonEmpty(details.Url, other.Url)
	details.User = firstNonEmpty(details.User, other.User)
	details.Password = firstNonEmpty(details.Password, other.Password)
	details.ApiKey = firstNonEmpty(details.ApiKey, other.ApiKey)
	details.SearchName = firstNonEmpty(details.SearchName, other.SearchName)
	details.SearchProp = firstNonEmpty(details.SearchProp, other.SearchProp)
	details.SearchRepos = firstNonEmpty(details.SearchRepos, other.SearchRepos)
	details.CertificatesPath = firstNonEmpty(details.CertificatesPath, other.CertificatesPath)
	details.InsecureTls = details.InsecureTls || other.InsecureTls
	if len(other.Headers) > 0 && details.Headers == nil {
		details.Headers = map[string]string{}
	}
	for k, v := range other.Headers {
		if _, ok := details.Headers[k]; !ok {
			details.Headers[k] = v
		}
	}
	return details
}

func (details *ArtifactoryDetails) CreateArtAuthConfig() *auth.ArtifactoryAuthConfiguration {
	return &auth.ArtifactoryAuthConfiguration{
		Url:              details.Url,
		User:             details.User,
		Password:         details.Password,
		ApiKey:           details.ApiKey,
		Headers:          details.Headers,
		CertificatesPath: details.CertificatesPath,
		InsecureTls:      details.InsecureTls,
	}
}

// ReadConfigFile loads a YAML configuration file.
func ReadConfigFile(path string) (*ArtifactoryDetails, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	details := &ArtifactoryDetails{}
	if err = yaml.Unmarshal(content, details); err != nil {
		return nil, errorutils.CheckErrorf("failed to parse %s: %s", path, err.Error())
	}
	log.Debug("Loaded configuration from", path)
	return details, nil
}

// GetConfigFilePath returns $PARTY_CONFIG or ~/.party.yml.
func GetConfigFilePath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errorutils.CheckError(err)
	}
	return filepath.Join(home, DefaultConfigFile), nil
}

// ReadDefaultConfigFile returns an empty configuration when the default file does not exist.
func ReadDefaultConfigFile() (*ArtifactoryDetails, error) {
	path, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(path); os.IsNotExist(err) {
		return &ArtifactoryDetails{}, nil
	}
	return ReadConfigFile(path)
}

// FromEnv reads the PARTY_* variables. PARTY_PASSWORD is expected base64 encoded.
func FromEnv() *ArtifactoryDetails {
	return &ArtifactoryDetails{
		Url:      os.Getenv(EnvUrl),
		User:     os.Getenv(EnvUser),
		Password: os.Getenv(EnvPassword),
		ApiKey:   os.Getenv(EnvApiKey),
	}
}

// FromJfrogCli reads a server configured with 'jf config add'. An empty serverId selects the default server.
func FromJfrogCli(serverId string) (*ArtifactoryDetails, error) {
	serverDetails, err := coreconfig.GetSpecificConfig(serverId, true, true)
	if err != nil {
		return nil, err
	}
	url := serverDetails.ArtifactoryUrl
	if url != "" {
		url = addApiSuffix(url)
	}
	return &ArtifactoryDetails{
		Url:      url,
		User:     serverDetails.User,
		Password: auth.EncodePassword(serverDetails.Password),
	}, nil
}

// addApiSuffix turns an Artifactory url into its REST API url.
func addApiSuffix(url string) string {
	url = strings.TrimRight(url, "/")
	if strings.HasSuffix(url, "/api") {
		return url
	}
	return url + "/api"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
