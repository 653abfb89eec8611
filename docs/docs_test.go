package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Info     struct{ Title string }    `json:"info"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "RentDesk API", doc.Info.Title)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths["/expenses"], "post")
	assert.Contains(t, doc.Paths["/units/{id}/status"], "patch")
	assert.Contains(t, doc.Paths, "/notifications")
}
