package fs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Filesystem uploads status/leaderboard snapshots to a static bucket.
type S3Filesystem struct {
	svc    *s3.S3
	bucket string
}

func NewS3Filesystem(sess *session.Session, stage string) (*S3Filesystem, error) {
	return &S3Filesystem{svc: s3.New(sess), bucket: "galleon-" + stage + "-static"}, nil
}

var s3ContentTypes = map[string]string{
	".json": "application/json",
}

func (s3fs *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	var contentType *string
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(filename, ext) {
			mime := mime
			contentType = &mime
			break
		}
	}

	req, _ := s3fs.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3fs.bucket),
		Key:          aws.String(filename),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	return req.Send()
}
