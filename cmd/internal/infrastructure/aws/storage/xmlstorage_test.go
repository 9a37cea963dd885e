package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string]string
	keys    []string
	err     error
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)
	f.keys = append(f.keys, aws.ToString(params.Bucket)+":"+key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func TestXMLStore_Open(t *testing.T) {
	getter := &fakeGetter{objects: map[string]string{
		"nfe/data/downloads/12345678000199/3519.xml": "<nfe><chave>3519</chave></nfe>",
	}}
	store := newS3XMLStore(getter, "webnotas-xml", "nfe")

	obj, err := store.Open(context.Background(), "data/downloads/12345678000199/3519.xml")
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "<nfe><chave>3519</chave></nfe>", string(body))
	assert.Equal(t, "application/xml", obj.ContentType)
	assert.EqualValues(t, len(body), obj.Size)
	assert.Equal(t, []string{"webnotas-xml:nfe/data/downloads/12345678000199/3519.xml"}, getter.keys)
}

func TestXMLStore_OpenMissing(t *testing.T) {
	store := newS3XMLStore(&fakeGetter{}, "bucket", "")

	_, err := store.Open(context.Background(), "missing.xml")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestXMLStore_OpenPropagatesErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := newS3XMLStore(&fakeGetter{err: boom}, "bucket", "")

	_, err := store.Open(context.Background(), "a.xml")
	assert.ErrorIs(t, err, boom)
}

func TestXMLStore_RejectsUnsafePaths(t *testing.T) {
	getter := &fakeGetter{}
	store := newS3XMLStore(getter, "bucket", "nfe/")

	for _, p := range []string{"", "  ", "../secrets.xml", "a/../../b.xml", `..\b.xml`, "notes.txt"} {
		_, err := store.Open(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
	assert.Empty(t, getter.keys)
}

func TestXMLStore_KeyNormalization(t *testing.T) {
	store := newS3XMLStore(&fakeGetter{}, "bucket", "")

	key, err := store.key("/data//downloads/./a.XML")
	require.NoError(t, err)
	assert.Equal(t, "data/downloads/a.XML", key)
}
