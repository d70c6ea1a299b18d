package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v2"
)

const aqlSpecSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "domain": {"enum": ["items", "builds", "entries"]},
    "criteria": {"type": "object"},
    "include": {"type": "array", "items": {"type": "string"}},
    "sort": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "$asc": {"type": "array", "items": {"type": "string"}},
        "$desc": {"type": "array", "items": {"type": "string"}}
      }
    },
    "limit": {"type": "integer", "minimum": 0},
    "offset": {"type": "integer", "minimum": 0}
  }
}`

// AqlSpec is the file form of an AQL query, in JSON or YAML.
type AqlSpec struct {
	Domain   string                 `json:"domain,omitempty"`
	Criteria map[string]interface{} `json:"criteria,omitempty"`
	Include  []string               `json:"include,omitempty"`
	Sort     map[string][]string    `json:"sort,omitempty"`
	Limit    int                    `json:"limit,omitempty"`
	Offset   int                    `json:"offset,omitempty"`
}

func (spec *AqlSpec) ToBuilder() *artifactory.AqlBuilder {
	builder := artifactory.NewAqlBuilder().
		SetIncludeFields(spec.Include...).
		SetSort(spec.Sort).
		SetLimit(spec.Limit).
		SetOffset(spec.Offset)
	if spec.Criteria != nil {
		builder.SetCriteria(spec.Criteria)
	}
	if spec.Domain != "" {
		builder.SetDomain(artifactory.Domain(spec.Domain))
	}
	return builder
}

// CreateAqlSpecFromFile reads a spec file, replacing ${key} with the matching specVars value.
// Files ending with .yml or .yaml are read as YAML, anything else as JSON.
func CreateAqlSpecFromFile(specFilePath string, specVars map[string]string) (*AqlSpec, error) {
	content, err := os.ReadFile(specFilePath)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	if len(specVars) > 0 {
		content = replaceSpecVars(content, specVars)
	}
	ext := strings.ToLower(filepath.Ext(specFilePath))
	if ext == ".yml" || ext == ".yaml" {
		if content, err = yamlToJson(content); err != nil {
			return nil, err
		}
	}
	return CreateAqlSpec(content)
}

// CreateAqlSpec validates a JSON spec and decodes it.
func CreateAqlSpec(content []byte) (*AqlSpec, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(aqlSpecSchema), gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, errorutils.CheckErrorf("failed to read the AQL spec: %s", err.Error())
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, errorutils.CheckErrorf("invalid AQL spec:\n%s", strings.Join(problems, "\n"))
	}
	spec := new(AqlSpec)
	if err = json.Unmarshal(content, spec); err != nil {
		return nil, errorutils.CheckError(err)
	}
	return spec, nil
}

func replaceSpecVars(content []byte, specVars map[string]string) []byte {
	log.Debug("Replacing variables in the provided AQL spec: \n" + string(content))
	for key, val := range specVars {
		key = "${" + key + "}"
		log.Debug(fmt.Sprintf("Replacing '%s' with '%s'", key, val))
		content = bytes.ReplaceAll(content, []byte(key), []byte(val))
	}
	log.Debug("The reformatted AQL spec is: \n" + string(content))
	return content
}

func yamlToJson(content []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errorutils.CheckError(err)
	}
	converted, err := toJsonCompatible(doc)
	if err != nil {
		return nil, err
	}
	jsonContent, err := json.Marshal(converted)
	return jsonContent, errorutils.CheckError(err)
}

// toJsonCompatible converts the map[interface{}]interface{} values produced by yaml.v2.
func toJsonCompatible(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, item := range v {
			strKey, ok := key.(string)
			if !ok {
				return nil, errorutils.CheckErrorf("unsupported YAML key %v: keys must be strings", key)
			}
			convertedItem, err := toJsonCompatible(item)
			if err != nil {
				return nil, err
			}
			converted[strKey] = convertedItem
		}
		return converted, nil
	case []interface{}:
		converted := make([]interface{}, len(v))
		for i, item := range v {
			convertedItem, err := toJsonCompatible(item)
			if err != nil {
				return nil, err
			}
			converted[i] = convertedItem
		}
		return converted, nil
	default:
		return v, nil
	}
}

// ParseKeyValues parses "key1=value1;key2=value2", the format of --spec-vars and --props.
func ParseKeyValues(vars string) map[string]string {
	result := map[string]string{}
	for _, pair := range strings.Split(vars, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			continue
		}
		result[strings.TrimSpace(key)] = value
	}
	return result
}
