package artifactory

import (
	"fmt"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const (
	ITEMS   Domain = "items"
	BUILDS  Domain = "builds"
	ENTRIES Domain = "entries"
)

type Domain string

func (d Domain) IsValid() bool {
	switch d {
	case ITEMS, BUILDS, ENTRIES:
		return true
	}
	return false
}

// Aql is a built AQL statement. See AqlBuilder.
type Aql struct {
	domain    Domain
	criteria  interface{}
	fields    []string
	sort      map[string][]string
	limit     int
	offset    int
	statement string
}

func (aql Aql) Domain() Domain {
	return aql.domain
}

func (aql Aql) Statement() string {
	return aql.statement
}

func (aql Aql) String() string {
	return aql.statement
}

// AqlBuilder collects the parts of an AQL statement, e.g.
// items.find({"repo": "myrepo"}).include("name", "repo").sort({"$asc": ["name"]}).limit(10).offset(20)
type AqlBuilder struct {
	domain   Domain
	criteria interface{}
	fields   []string
	sort     map[string][]string
	limit    int
	offset   int
}

func NewAqlBuilder() *AqlBuilder {
	return &AqlBuilder{domain: ITEMS}
}

func (builder *AqlBuilder) SetDomain(domain Domain) *AqlBuilder {
	builder.domain = domain
	return builder
}

// SetCriteria sets the argument of find(). Any value that marshals to JSON is accepted.
func (builder *AqlBuilder) SetCriteria(criteria interface{}) *AqlBuilder {
	builder.criteria = criteria
	return builder
}

func (builder *AqlBuilder) SetIncludeFields(fields ...string) *AqlBuilder {
	builder.fields = append([]string(nil), fields...)
	return builder
}

// SetSort maps a direction ("$asc" or "$desc") to the fields to order by.
func (builder *AqlBuilder) SetSort(orderAndFields map[string][]string) *AqlBuilder {
	builder.sort = make(map[string][]string, len(orderAndFields))
	for order, fields := range orderAndFields {
		builder.sort[order] = append([]string(nil), fields...)
	}
	return builder
}

func (builder *AqlBuilder) SetLimit(limit int) *AqlBuilder {
	builder.limit = limit
	return builder
}

func (builder *AqlBuilder) SetOffset(offset int) *AqlBuilder {
	builder.offset = offset
	return builder
}

func (builder *AqlBuilder) Build() (Aql, error) {
	if builder.domain == "" {
		builder.domain = ITEMS
	}
	if !builder.domain.IsValid() {
		return Aql{}, errorutils.CheckError(invalidArgument("domain", "unknown AQL domain '%s' (valid domains: items, builds, entries)", builder.domain))
	}
	if builder.limit < 0 {
		return Aql{}, errorutils.CheckError(invalidArgument("limit", "must not be negative, got %d", builder.limit))
	}
	if builder.offset < 0 {
		return Aql{}, errorutils.CheckError(invalidArgument("offset", "must not be negative, got %d", builder.offset))
	}
	aql := Aql{
		domain:   builder.domain,
		criteria: builder.criteria,
		fields:   builder.fields,
		sort:     builder.sort,
		limit:    builder.limit,
		offset:   builder.offset,
	}
	statement, err := aql.format()
	if err != nil {
		return Aql{}, err
	}
	aql.statement = statement
	return aql, nil
}

func (aql Aql) format() (string, error) {
	criteria := aql.criteria
	if m, ok := criteria.(map[string]interface{}); criteria == nil || (ok && m == nil) {
		criteria = map[string]interface{}{}
	}
	criteriaJson, err := utils.RenderJson(criteria)
	if err != nil {
		return "", err
	}
	include, err := formatInclude(aql.fields)
	if err != nil {
		return "", err
	}
	sort, err := formatSort(aql.sort)
	if err != nil {
		return "", err
	}

	statement := fmt.Sprintf("%s.find(%s)", aql.domain, criteriaJson) +
		include + sort + formatLimit(aql.limit) + formatOffset(aql.offset)
	log.Debug("Full AQL statement:", statement)
	return statement, nil
}

func formatInclude(fields []string) (string, error) {
	if len(fields) == 0 {
		return "", nil
	}
	fieldsJson, err := utils.RenderJson(fields)
	if err != nil {
		return "", err
	}
	statement := ".include(" + strings.TrimSuffix(strings.TrimPrefix(fieldsJson, "["), "]") + ")"
	log.Debug("Include statement:", statement)
	return statement, nil
}

func formatSort(orderAndFields map[string][]string) (string, error) {
	if len(orderAndFields) == 0 {
		return "", nil
	}
	sortJson, err := utils.RenderJson(orderAndFields)
	if err != nil {
		return "", err
	}
	statement := ".sort(" + sortJson + ")"
	log.Debug("Sort statement:", statement)
	return statement, nil
}

func formatLimit(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(".limit(%d)", limit)
}

func formatOffset(offset int) string {
	if offset <= 0 {
		return ""
	}
	return fmt.Sprintf(".offset(%d)", offset)
}
