package auth

import (
	"encoding/base64"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/httputils"
)

// ArtifactoryAuthConfiguration holds everything needed to reach an Artifactory API.
// Password is kept base64 encoded and is only decoded when a request is built.
type ArtifactoryAuthConfiguration struct {
	Url              string            `json:"-"`
	User             string            `json:"-"`
	Password         string            `json:"-"`
	ApiKey           string            `json:"-"`
	Headers          map[string]string `json:"-"`
	CertificatesPath string            `json:"-"`
	InsecureTls      bool              `json:"-"`
}

func (rt *ArtifactoryAuthConfiguration) GetUrl() string {
	return strings.TrimSuffix(rt.Url, "/")
}

func (rt *ArtifactoryAuthConfiguration) GetUser() string {
	return rt.User
}

func (rt *ArtifactoryAuthConfiguration) GetHeaders() map[string]string {
	return rt.Headers
}

// DecodePassword returns the clear text password.
func (rt *ArtifactoryAuthConfiguration) DecodePassword() (string, error) {
	if rt.Password == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(rt.Password)
	if err != nil {
		return "", errorutils.CheckErrorf("the configured password is not base64 encoded: %s", err.Error())
	}
	return string(decoded), nil
}

func (rt *ArtifactoryAuthConfiguration) CreateArtifactoryHttpClientDetails() (httputils.HttpClientDetails, error) {
	password, err := rt.DecodePassword()
	if err != nil {
		return httputils.HttpClientDetails{}, err
	}
	return httputils.HttpClientDetails{
		User:     rt.User,
		Password: password,
		ApiKey:   rt.ApiKey,
		Headers:  copyMap(rt.Headers)}, nil
}

// EncodePassword is the inverse of DecodePassword, used when credentials come in clear text.
func EncodePassword(password string) string {
	if password == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(password))
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
