package schema_test

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/morph/service/meta"
	"github.com/viant/morph/service/schema"
)

//go:embed testdata/*
var testFS embed.FS

func newService() *schema.Service {
	return schema.New(meta.New(afs.New(), "embed:///testdata", &testFS))
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	service := newService()

	testCases := []struct {
		name            string
		url             string
		expectErr       bool
		expectUniqueKey string
	}{
		{
			name:            "schema with unique key",
			url:             "schema.yaml",
			expectUniqueKey: "id",
		},
		{
			name:            "schema without unique key",
			url:             "nokey.yaml",
			expectUniqueKey: "",
		},
		{
			name:      "unique key not declared",
			url:       "invalid.yaml",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			aSchema, err := service.Load(ctx, tc.url)
			if tc.expectErr {
				assert.NotNil(t, err)
				return
			}
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, tc.expectUniqueKey, aSchema.UniqueKeyField())
		})
	}
}

func TestSchema_Field(t *testing.T) {
	aSchema := &schema.Schema{Fields: []schema.Field{{Name: "id"}, {Name: "path"}}}
	assert.NotNil(t, aSchema.Field("path"))
	assert.Nil(t, aSchema.Field("missing"))
}
