package receipts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/order"
)

// Archiver copies completed-order receipts to S3-compatible object
// storage. Archival is best effort: a failed upload is logged and the
// order outcome is unaffected.
type Archiver struct {
	client *s3.Client
	bucket string
}

// NewArchiver builds an archiver from RECEIPT_* env vars. Returns nil
// when the bucket is not configured, which disables archival.
func NewArchiver(ctx context.Context) (*Archiver, error) {
	endpoint := os.Getenv("RECEIPT_S3_ENDPOINT")
	accessKey := os.Getenv("RECEIPT_S3_ACCESS_KEY")
	secretKey := os.Getenv("RECEIPT_S3_SECRET_KEY")
	bucket := os.Getenv("RECEIPT_S3_BUCKET")

	if bucket == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID && endpoint != "" {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Archiver{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func (a *Archiver) Archive(ctx context.Context, receipt *order.Receipt) {
	body, err := json.Marshal(receipt)
	if err != nil {
		log.Error().Err(err).Msg("receipt marshal failed")
		return
	}

	key := fmt.Sprintf("receipts/%d.json", receipt.TransactionID)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		log.Error().
			Err(err).
			Int64("transaction_id", receipt.TransactionID).
			Msg("receipt archive failed")
		return
	}

	log.Info().
		Int64("transaction_id", receipt.TransactionID).
		Str("key", key).
		Msg("receipt archived")
}
