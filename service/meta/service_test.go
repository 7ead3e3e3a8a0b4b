package meta_test

import (
	"context"
	"embed"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/morph/service/meta"
)

//go:embed testdata/*
var testFS embed.FS

func TestService_Load(t *testing.T) {
	_ = os.Setenv("MORPH_SUFFIX", "-dev")
	service := meta.New(afs.New(), "embed:///testdata", &testFS)

	var target struct {
		Name   string   `yaml:"name"`
		Values []string `yaml:"values"`
	}
	err := service.Load(context.Background(), "doc.yaml", &target)
	assert.Nil(t, err)
	assert.Equal(t, "sample-dev", target.Name)
	assert.Equal(t, []string{"a", "b"}, target.Values)

	err = service.Load(context.Background(), "missing.yaml", &target)
	assert.NotNil(t, err)
}
