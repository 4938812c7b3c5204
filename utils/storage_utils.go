package utils

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// BannerStorage uploads banner images to an S3-compatible object store.
type BannerStorage struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func (s *BannerStorage) client() (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(s.Region),
		Endpoint: aws.String(s.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			s.AccessKey, s.SecretKey, "",
		),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// Upload stores the file under folder/fileName with public read access
// and returns the public URL.
func (s *BannerStorage) Upload(file []byte, fileName, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	s3Client, err := s.client()
	if err != nil {
		return "", err
	}

	_, err = s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", s.Bucket, stripScheme(s.Endpoint), filePath), nil
}

func stripScheme(endpoint string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if len(endpoint) > len(prefix) && endpoint[:len(prefix)] == prefix {
			return endpoint[len(prefix):]
		}
	}
	return endpoint
}
