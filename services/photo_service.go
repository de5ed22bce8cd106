package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/utils"
)

// PhotoService stores menu item photos and hands out short-lived URLs for
// the customer menu and the staff dashboard.
type PhotoService interface {
	// UploadPhoto validates and stores a photo for a menu item, returning
	// the storage key.
	UploadPhoto(menuItemID uint, fileHeader *multipart.FileHeader) (string, error)

	// PhotoURL generates a URL for accessing a stored photo.
	PhotoURL(key string) (string, error)

	// DeletePhoto removes a stored photo.
	DeletePhoto(key string) error
}

// S3PhotoService implements PhotoService on AWS S3.
type S3PhotoService struct {
	client *s3.Client
	bucket string
}

var photoServiceInstance PhotoService

// InitPhotoService initializes the photo service with AWS credentials
func InitPhotoService() (PhotoService, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	photoServiceInstance = &S3PhotoService{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}

	return photoServiceInstance, nil
}

// GetPhotoService returns the initialized photo service instance
func GetPhotoService() PhotoService {
	return photoServiceInstance
}

// SetPhotoService sets the photo service instance (primarily for testing)
func SetPhotoService(service PhotoService) {
	photoServiceInstance = service
}

// UploadPhoto validates the file and uploads it under a key tied to the
// menu item, so re-uploads for the same item stay grouped in the bucket.
func (s *S3PhotoService) UploadPhoto(menuItemID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("menu/%d_%d%s", menuItemID, time.Now().Unix(), filepath.Ext(fileHeader.Filename))

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}

// PhotoURL generates a presigned URL valid for one hour. The bucket stays
// private; menus embed these URLs directly.
func (s *S3PhotoService) PhotoURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DeletePhoto deletes a photo from S3
func (s *S3PhotoService) DeletePhoto(key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from S3: %w", err)
	}

	return nil
}
