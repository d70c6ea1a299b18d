package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jfrog/jfrog-client-go/http/httpclient"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
)

const DryRunMessage = "Dry mode enabled."

var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPut:     true,
	http.MethodPost:    true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
}

// Requester sends one authenticated request per call to the Artifactory API.
type Requester struct {
	client     *httpclient.HttpClient
	ArtDetails *auth.ArtifactoryAuthConfiguration
	DryRun     bool
}

func NewRequester(client *httpclient.HttpClient, artDetails *auth.ArtifactoryAuthConfiguration) *Requester {
	return &Requester{client: client, ArtDetails: artDetails}
}

func (r *Requester) GetArtifactoryDetails() *auth.ArtifactoryAuthConfiguration {
	return r.ArtDetails
}

func (r *Requester) IsDryRun() bool {
	return r.DryRun
}

// BuildUrl resolves an endpoint against the configured API url. Absolute urls are kept as is.
func (r *Requester) BuildUrl(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return r.ArtDetails.GetUrl() + "/" + strings.TrimPrefix(endpoint, "/")
}

// Send performs a single request. The method is case-insensitive.
// For PUT without content, the part of the endpoint after the first '?' is sent as the body.
// headers override the configured headers for this request only.
func (r *Requester) Send(method, endpoint string, content []byte, headers map[string]string) (*http.Response, []byte, error) {
	queryType := strings.ToUpper(method)
	if !supportedMethods[queryType] {
		return nil, nil, errorutils.CheckError(&UnknownQueryTypeError{QueryType: method})
	}
	url := r.BuildUrl(endpoint)

	if r.DryRun {
		return dryRunResponse(url, strings.ToLower(queryType))
	}

	if queryType == http.MethodPut && content == nil {
		if _, payload, found := strings.Cut(url, "?"); found {
			content = []byte(payload)
		}
	}

	httpClientsDetails, err := r.ArtDetails.CreateArtifactoryHttpClientDetails()
	if err != nil {
		return nil, nil, err
	}
	for k, v := range headers {
		for existing := range httpClientsDetails.Headers {
			if strings.EqualFold(existing, k) {
				delete(httpClientsDetails.Headers, existing)
			}
		}
		httpClientsDetails.Headers[k] = v
	}

	log.Debug("Sending", queryType, "request to:", url)
	// The client reports 5xx and 429 responses as an exhausted retry error, with resp still set.
	resp, body, _, err := r.client.Send(queryType, url, content, true, true, httpClientsDetails, "")
	if resp != nil && resp.StatusCode >= http.StatusBadRequest {
		log.Debug("Artifactory response:", resp.Status, string(body))
		return resp, body, errorutils.CheckError(&ResponseError{
			Method:     queryType,
			Url:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body})
	}
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Artifactory response:", resp.Status, string(body))
	return resp, body, nil
}

// Clone returns a requester with the same details and its own http client, for use from another goroutine.
func (r *Requester) Clone() (*Requester, error) {
	client, err := NewHttpClient(r.ArtDetails)
	if err != nil {
		return nil, err
	}
	return &Requester{client: client, ArtDetails: r.ArtDetails, DryRun: r.DryRun}, nil
}

// NewHttpClient builds a client for artDetails. Retries are disabled, every call is a single request.
func NewHttpClient(artDetails *auth.ArtifactoryAuthConfiguration) (*httpclient.HttpClient, error) {
	return httpclient.ClientBuilder().
		SetCertificatesPath(artDetails.CertificatesPath).
		SetInsecureTls(artDetails.InsecureTls).
		SetRetries(0).
		Build()
}

func (r *Requester) Get(endpoint string) (*http.Response, []byte, error) {
	return r.Send(http.MethodGet, endpoint, nil, nil)
}

func (r *Requester) Put(endpoint string, content []byte) (*http.Response, []byte, error) {
	return r.Send(http.MethodPut, endpoint, content, nil)
}

func (r *Requester) Post(endpoint string, content []byte, headers map[string]string) (*http.Response, []byte, error) {
	return r.Send(http.MethodPost, endpoint, content, headers)
}

func (r *Requester) Delete(endpoint string) (*http.Response, []byte, error) {
	return r.Send(http.MethodDelete, endpoint, nil, nil)
}

func (r *Requester) Head(endpoint string) (*http.Response, []byte, error) {
	return r.Send(http.MethodHead, endpoint, nil, nil)
}

func (r *Requester) Options(endpoint string) (*http.Response, []byte, error) {
	return r.Send(http.MethodOptions, endpoint, nil, nil)
}

func (r *Requester) Patch(endpoint string, content []byte) (*http.Response, []byte, error) {
	return r.Send(http.MethodPatch, endpoint, content, nil)
}

// GetJson sends a GET request and decodes the response body into v.
func (r *Requester) GetJson(endpoint string, v interface{}) error {
	_, body, err := r.Get(endpoint)
	if err != nil {
		return err
	}
	return Unmarshal(body, v)
}

func Unmarshal(body []byte, v interface{}) error {
	return errorutils.CheckError(json.Unmarshal(body, v))
}

type dryRunBody struct {
	Message   string `json:"message"`
	Query     string `json:"query"`
	QueryType string `json:"query_type"`
}

func dryRunResponse(url, queryType string) (*http.Response, []byte, error) {
	log.Info("[Dry run] Would send", queryType, "request to:", url)
	content, err := RenderJson(dryRunBody{Message: DryRunMessage, Query: url, QueryType: queryType})
	if err != nil {
		return nil, nil, err
	}
	body := []byte(content)
	resp := &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
	return resp, body, nil
}
