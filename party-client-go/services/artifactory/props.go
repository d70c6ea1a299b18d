package artifactory

import (
	"net/http"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

type PropsService struct {
	requester *utils.Requester
}

func NewPropsService(requester *utils.Requester) *PropsService {
	return &PropsService{requester: requester}
}

type PropertiesResult struct {
	Uri        string
	Properties map[string][]string
	// Attributes holds every top level key of the response.
	Attributes map[string]interface{}
}

type propertiesResponse struct {
	Uri        string              `json:"uri"`
	Properties map[string][]string `json:"properties"`
}

// GetProps reads the properties of an artifact. fileUrl is the artifact's storage API url,
// as returned by the searches. When names is empty all properties are returned.
func (ps *PropsService) GetProps(fileUrl string, names ...string) (*PropertiesResult, error) {
	query := fileUrl + "?properties"
	if len(names) > 0 {
		query += "=" + strings.Join(names, ",")
	}
	_, body, err := ps.requester.Get(query)
	if err != nil {
		return nil, err
	}
	response := propertiesResponse{}
	if err = utils.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	result := &PropertiesResult{Uri: response.Uri, Properties: response.Properties}
	if err = utils.Unmarshal(body, &result.Attributes); err != nil {
		return nil, err
	}
	return result, nil
}

// SetProps attaches props to an artifact.
func (ps *PropsService) SetProps(fileUrl string, props map[string]string) error {
	if len(props) == 0 {
		return errorutils.CheckError(invalidArgument("properties", "no properties specified"))
	}
	log.Info("Setting properties to:", fileUrl)
	query := fileUrl + "?properties=" + utils.EncodeProps(props)
	log.Debug("Sending set properties request:", query)
	_, _, err := ps.requester.Send(http.MethodPut, query, nil, nil)
	return err
}

// DeleteProps removes the named properties from an artifact.
func (ps *PropsService) DeleteProps(fileUrl string, names ...string) error {
	if len(names) == 0 {
		return errorutils.CheckError(invalidArgument("properties", "no properties specified"))
	}
	log.Info("Deleting properties from:", fileUrl)
	query := fileUrl + "?properties=" + strings.Join(names, ",")
	log.Debug("Sending delete properties request:", query)
	_, _, err := ps.requester.Delete(query)
	return err
}
