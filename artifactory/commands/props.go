package commands

import (
	"slices"

	"github.com/jfrog/jfrog-client-go/utils/log"
	"golang.org/x/exp/maps"
)

type PropertyResult struct {
	Key   string `json:"key" csv:"key"`
	Value string `json:"value" csv:"value"`
}

func GetProps(fileUrl string, names []string, conf *CommandConfiguration) ([]PropertyResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	result, err := servicesManager.GetProps(fileUrl, names...)
	if err != nil {
		return nil, err
	}
	return toPropertyResults(result.Properties), nil
}

func SetProps(fileUrl string, props map[string]string, conf *CommandConfiguration) error {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return err
	}
	if err = servicesManager.SetProps(fileUrl, props); err != nil {
		return err
	}
	log.Info("Done setting properties.")
	return nil
}

func DeleteProps(fileUrl string, names []string, conf *CommandConfiguration) error {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return err
	}
	if err = servicesManager.DeleteProps(fileUrl, names...); err != nil {
		return err
	}
	log.Info("Done deleting properties.")
	return nil
}

// Lookup finds artifacts by properties and returns the properties of the first match.
func Lookup(props map[string]string, names []string, conf *CommandConfiguration) ([]PropertyResult, error) {
	servicesManager, err := conf.createServiceManager()
	if err != nil {
		return nil, err
	}
	found, err := servicesManager.FindByProperties(props)
	if err != nil {
		return nil, err
	}
	uri := found.Results[0].GetUri()
	log.Info("Reading properties of", uri)
	result, err := servicesManager.GetProps(uri, names...)
	if err != nil {
		return nil, err
	}
	return toPropertyResults(result.Properties), nil
}

// toPropertyResults flattens multi-valued properties into one row per value, sorted by key.
func toPropertyResults(props map[string][]string) []PropertyResult {
	keys := maps.Keys(props)
	slices.Sort(keys)
	var result []PropertyResult
	for _, key := range keys {
		for _, value := range props[key] {
			result = append(result, PropertyResult{Key: key, Value: value})
		}
	}
	return result
}
