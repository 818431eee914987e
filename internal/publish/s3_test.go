package publish

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	inputs []*s3manager.UploadInput
	bodies [][]byte
	err    error
}

func (f *fakeUploader) Upload(in *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return f.UploadWithContext(context.Background(), in, opts...)
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3manager.UploadOutput{Location: "s3://" + aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)}, nil
}

// offlineS3 signs requests with static credentials and never touches the network.
func offlineS3(t *testing.T) *s3.S3 {
	t.Helper()
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("eu-west-1"),
		Credentials: credentials.NewStaticCredentials("AKIDEXAMPLE", "secret", ""),
	})
	require.NoError(t, err)
	return s3.New(sess)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPublishFile(t *testing.T) {
	up := &fakeUploader{}
	pub := newS3Publisher(up, offlineS3(t), "plots", "runs/abc")
	local := writeFile(t, "cost_history.png", "png-bytes")

	link, err := pub.PublishFile(context.Background(), local)
	require.NoError(t, err)

	require.Len(t, up.inputs, 1)
	assert.Equal(t, "plots", aws.StringValue(up.inputs[0].Bucket))
	assert.Equal(t, "runs/abc/cost_history.png", aws.StringValue(up.inputs[0].Key))
	assert.Equal(t, "image/png", aws.StringValue(up.inputs[0].ContentType))
	assert.Equal(t, "png-bytes", string(up.bodies[0]))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Path, "runs/abc/cost_history.png")
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestPublishFileUploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("access denied")}
	pub := newS3Publisher(up, offlineS3(t), "plots", "")
	local := writeFile(t, "data_scatter_fit.png", "x")

	_, err := pub.PublishFile(context.Background(), local)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Contains(t, err.Error(), "s3://plots/data_scatter_fit.png")
}

func TestPublishFileMissing(t *testing.T) {
	up := &fakeUploader{}
	pub := newS3Publisher(up, offlineS3(t), "plots", "")

	_, err := pub.PublishFile(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, up.inputs)
}

func TestPublishFiles(t *testing.T) {
	up := &fakeUploader{}
	pub := newS3Publisher(up, offlineS3(t), "plots", "p")
	a := writeFile(t, "a.png", "a")
	b := writeFile(t, "b.png", "b")

	links, err := pub.PublishFiles(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, "p/a.png", aws.StringValue(up.inputs[0].Key))
	assert.Equal(t, "p/b.png", aws.StringValue(up.inputs[1].Key))
}
