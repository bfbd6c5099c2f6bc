package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/crelab/dircrawl/pkg/records"
)

func mustMetadata(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	md, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return md
}

func TestExistenceQueryVector(t *testing.T) {
	v := existenceQueryVector()
	assert.Len(t, v, embeddingDim)

	var sum float32
	for _, x := range v {
		sum += x * x
	}
	assert.NotZero(t, sum, "cosine indexes reject a zero query vector")
}

func TestFormatMatchPerson(t *testing.T) {
	md := mustMetadata(t, map[string]interface{}{
		"name":         "Jane Doe",
		"title":        "Senior Vice President",
		"email":        "jane.doe@cbre.com",
		"phone":        "+14255550100",
		"listings_url": "https://www.cbre.com/properties/agent-listings?agent=jane-doe",
		"url":          "https://www.cbre.com/people/jane-doe",
	})

	out := formatMatch(NamespacePerson, 0.91, md)
	assert.Contains(t, out, "[person] Jane Doe (score 0.91)")
	assert.Contains(t, out, "Email: jane.doe@cbre.com")
	assert.Contains(t, out, "Listings: https://www.cbre.com/properties/agent-listings?agent=jane-doe")
	assert.Contains(t, out, "URL: https://www.cbre.com/people/jane-doe")
}

func TestFormatMatchSkipsSentinels(t *testing.T) {
	md := mustMetadata(t, map[string]interface{}{
		"name": "Rainier Commerce Center",
		"sqft": records.NotFound,
		"url":  "https://www.cbre.com/properties/rainier-commerce-center",
	})

	out := formatMatch(NamespaceProperty, 0.84, md)
	assert.NotContains(t, out, "Size:")
	assert.Contains(t, out, "URL: https://www.cbre.com/properties/rainier-commerce-center")
}
