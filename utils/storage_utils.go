package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Storage uploads public images to an S3-compatible object store and
// hands back plain URLs.
type S3Storage struct {
	endpoint  string
	region    string
	bucket    string
	accessKey string
	secretKey string
}

func NewS3Storage(endpoint, region, bucket, accessKey, secretKey string) *S3Storage {
	return &S3Storage{
		endpoint:  endpoint,
		region:    region,
		bucket:    bucket,
		accessKey: accessKey,
		secretKey: secretKey,
	}
}

func (s *S3Storage) client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(s.region),
		Endpoint:    aws.String(s.endpoint),
		Credentials: credentials.NewStaticCredentials(s.accessKey, s.secretKey, ""),
	}))
	return s3.New(sess)
}

func (s *S3Storage) baseURL() string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s", s.bucket, host)
}

// ObjectURL returns the public URL an object would have under this bucket.
func (s *S3Storage) ObjectURL(folder, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL(), folder, fileName)
}

// UploadFile stores the file under folder/fileName with public-read access
// and returns the public URL.
func (s *S3Storage) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client().PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL(), filePath), nil
}

// DeleteFileByURL removes an object previously returned by UploadFile.
// URLs outside this bucket are ignored.
func (s *S3Storage) DeleteFileByURL(fileURL string) error {
	prefix := s.baseURL() + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(fileURL, prefix)

	_, err := s.client().DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file from S3: %v", err)
	}
	return nil
}
