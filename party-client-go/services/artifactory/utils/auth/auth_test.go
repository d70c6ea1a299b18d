package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUrl(t *testing.T) {
	rt := &ArtifactoryAuthConfiguration{Url: "https://acme.jfrog.io/artifactory/api/"}
	assert.Equal(t, "https://acme.jfrog.io/artifactory/api", rt.GetUrl())
	rt.Url = "https://acme.jfrog.io/artifactory/api"
	assert.Equal(t, "https://acme.jfrog.io/artifactory/api", rt.GetUrl())
}

func TestPasswordEncoding(t *testing.T) {
	rt := &ArtifactoryAuthConfiguration{Password: EncodePassword("p@ss")}
	assert.Equal(t, "cEBzcw==", rt.Password)
	password, err := rt.DecodePassword()
	require.NoError(t, err)
	assert.Equal(t, "p@ss", password)

	assert.Empty(t, EncodePassword(""))
	rt.Password = ""
	password, err = rt.DecodePassword()
	require.NoError(t, err)
	assert.Empty(t, password)

	rt.Password = "%%%"
	_, err = rt.DecodePassword()
	assert.Error(t, err)
}

func TestCreateArtifactoryHttpClientDetails(t *testing.T) {
	headers := map[string]string{"X-Custom": "1"}
	rt := &ArtifactoryAuthConfiguration{User: "admin", Password: EncodePassword("password"), ApiKey: "key", Headers: headers}
	details, err := rt.CreateArtifactoryHttpClientDetails()
	require.NoError(t, err)
	assert.Equal(t, "admin", details.User)
	assert.Equal(t, "password", details.Password)
	assert.Equal(t, "key", details.ApiKey)
	assert.Equal(t, headers, details.Headers)

	details.Headers["X-Other"] = "2"
	assert.NotContains(t, rt.Headers, "X-Other")
}

func TestCreateArtifactoryHttpClientDetailsNilHeaders(t *testing.T) {
	details, err := (&ArtifactoryAuthConfiguration{}).CreateArtifactoryHttpClientDetails()
	require.NoError(t, err)
	assert.NotNil(t, details.Headers)
}
