//go:build itest

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/party-go/party/party-client-go/services/artifactory"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	artifactoryImage = "releases-docker.jfrog.io/jfrog/artifactory-oss:7.77.5"
	itestRepo        = "party-itest-local"
)

func startArtifactory(t *testing.T) string {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        artifactoryImage,
			ExposedPorts: []string{"8081/tcp", "8082/tcp"},
			WaitingFor: wait.ForHTTP("/artifactory/api/system/ping").
				WithPort("8081/tcp").
				WithStartupTimeout(5 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8081/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("http://%s:%s/artifactory/api", host, port.Port())
}

func TestArtifactoryIntegration(t *testing.T) {
	apiUrl := startArtifactory(t)
	config, err := new(ArtifactoryServicesConfigBuilder).
		SetArtDetails(&auth.ArtifactoryAuthConfiguration{
			Url:      apiUrl,
			User:     "admin",
			Password: auth.EncodePassword("password"),
			Headers:  map[string]string{"Content-Type": "application/json"},
		}).
		SetNumOfThreadPerOperation(3).
		SetMaxDepth(3).
		Build()
	require.NoError(t, err)
	manager, err := NewArtifactoryService(config)
	require.NoError(t, err)

	_, err = manager.Query("repositories/"+itestRepo, "put", []byte(`{"rclass": "local", "packageType": "generic"}`))
	require.NoError(t, err)
	fileUrl := apiUrl[:len(apiUrl)-len("/api")] + "/" + itestRepo + "/org/acme/party.txt"
	_, err = manager.Query(fileUrl, "put", []byte("party"))
	require.NoError(t, err)
	storageUrl := apiUrl + "/storage/" + itestRepo + "/org/acme/party.txt"

	t.Run("repositories", func(t *testing.T) {
		repos, err := manager.GetRepositories(artifactory.LOCAL)
		require.NoError(t, err)
		assert.Contains(t, repos, itestRepo)
	})

	t.Run("properties", func(t *testing.T) {
		require.NoError(t, manager.SetProps(storageUrl, map[string]string{"build.name": "party", "build.number": "1"}))
		props, err := manager.GetProps(storageUrl)
		require.NoError(t, err)
		assert.Equal(t, []string{"party"}, props.Properties["build.name"])

		found, err := manager.FindByProperties(map[string]string{"build.name": "party"})
		require.NoError(t, err)
		assert.Equal(t, []string{"party.txt"}, found.Files)

		require.NoError(t, manager.DeleteProps(storageUrl, "build.number"))
		props, err = manager.GetProps(storageUrl)
		require.NoError(t, err)
		assert.NotContains(t, props.Properties, "build.number")
	})

	t.Run("pattern", func(t *testing.T) {
		result, err := manager.FindByPattern(artifactory.PatternSearchParams{Pattern: "party", Repo: itestRepo})
		require.NoError(t, err)
		assert.Len(t, result.Files, 1)
	})

	t.Run("aql", func(t *testing.T) {
		result, err := manager.RunAql(artifactory.NewAqlBuilder().
			SetCriteria(map[string]interface{}{"repo": itestRepo}).
			SetIncludeFields("name", "repo", "path"))
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "party.txt", result.Results[0]["name"])
	})

	t.Run("storage", func(t *testing.T) {
		info, err := manager.GetFileInfo(itestRepo + "/org/acme/party.txt")
		require.NoError(t, err)
		assert.Equal(t, "5", info.Size)
		_, err = manager.GetStorageInfo()
		assert.NoError(t, err)
	})
}
