package s3store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestKey(t *testing.T) {
	assert.Equal(t, "Episodes/Ep_1_ED.owl", NewClient(nil, "b", "", 0).Key("Ep_1"))
	assert.Equal(t, "runs/Episodes/Ep_1_ED.owl", NewClient(nil, "b", "runs/", 0).Key("Ep_1"))
}

func TestWrite(t *testing.T) {
	api := &fakePutter{}
	c := NewClient(api, "episodes", "runs", 0)

	require.NoError(t, c.Write("Ep_1", "<rdf:RDF/>"))

	assert.Equal(t, "episodes", aws.ToString(api.input.Bucket))
	assert.Equal(t, "runs/Episodes/Ep_1_ED.owl", aws.ToString(api.input.Key))
	assert.Equal(t, contentType, aws.ToString(api.input.ContentType))
	assert.Equal(t, "Ep_1", api.input.Metadata["episode"])
	assert.Equal(t, "<rdf:RDF/>", api.body)
}

func TestWriteError(t *testing.T) {
	c := NewClient(&fakePutter{err: errors.New("denied")}, "episodes", "", 0)

	assert.Error(t, c.Write("Ep_1", "text"))
}
