package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	ErrNotFound    = errors.New("xml not found")
	ErrInvalidPath = errors.New("invalid xml path")
)

// XMLStore reads the document XMLs written by the sync engine. Documents
// point at them through their xml_path.
type XMLStore interface {
	Open(ctx context.Context, xmlPath string) (*XMLObject, error)
}

type XMLObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3XMLStore struct {
	bucket string
	prefix string
	client objectGetter
}

func NewXMLStore(ctx context.Context, region, bucket, prefix string) (XMLStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return newS3XMLStore(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newS3XMLStore(client objectGetter, bucket, prefix string) *s3XMLStore {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &s3XMLStore{
		bucket: bucket,
		prefix: prefix,
		client: client,
	}
}

func (s *s3XMLStore) Open(ctx context.Context, xmlPath string) (*XMLObject, error) {
	key, err := s.key(xmlPath)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = "application/xml"
	}
	return &XMLObject{
		Body:        out.Body,
		ContentType: contentType,
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

// key maps an xml_path to an object key. Paths escaping the prefix and
// anything that is not an .xml file are refused.
func (s *s3XMLStore) key(xmlPath string) (string, error) {
	xmlPath = strings.ReplaceAll(strings.TrimSpace(xmlPath), "\\", "/")
	if xmlPath == "" {
		return "", ErrInvalidPath
	}

	for _, segment := range strings.Split(xmlPath, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+xmlPath), "/")
	if !strings.EqualFold(path.Ext(cleaned), ".xml") {
		return "", ErrInvalidPath
	}
	return s.prefix + cleaned, nil
}
