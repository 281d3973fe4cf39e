package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/config"
)

// DocumentStore guarda documentos (formulários de convênio, fotos de
// perfil) no bucket da clínica.
type DocumentStore struct {
	client *s3.Client
	bucket string
}

func NewDocumentStore(cfg *config.Config) *DocumentStore {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &DocumentStore{
		client: client,
		bucket: cfg.S3Bucket,
	}
}

// Put grava o conteúdo sob um prefixo lógico e devolve a chave gerada.
func (s *DocumentStore) Put(
	ctx context.Context,
	prefix string,
	contentType string,
	data []byte,
) (string, error) {

	key := fmt.Sprintf("%s/%s", prefix, uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
