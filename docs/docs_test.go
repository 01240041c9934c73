package docs_test

import (
	"encoding/json"
	"testing"

	"go-contact-relay/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocumentMatchesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api", doc.BasePath)
	assert.Contains(t, doc.Paths["/contact"], "post")
	assert.Contains(t, doc.Paths["/health"], "get")
	assert.Len(t, doc.Paths, 2)
}
