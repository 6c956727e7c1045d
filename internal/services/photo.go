package services

import (
	"context"
	"fmt"
	"time"

	"lostfound-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadURLExpiry = 5 * time.Minute

// PhotoService handles item photo uploads
type PhotoService struct {
	itemRepo  *repository.ItemRepository
	s3Client  *s3.Client
	s3Bucket  string
	awsRegion string
}

// NewPhotoService creates a new photo service
func NewPhotoService(itemRepo *repository.ItemRepository, awsRegion, s3Bucket, accessKey, secretKey string) (*PhotoService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(awsRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &PhotoService{
		itemRepo:  itemRepo,
		s3Client:  s3.NewFromConfig(cfg),
		s3Bucket:  s3Bucket,
		awsRegion: awsRegion,
	}, nil
}

// UploadResponse represents the response with pre-signed upload URL
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	ExpiresIn int    `json:"expires_in"`
}

// GetPreSignedURL generates a pre-signed URL for uploading a photo of an
// item report. Only the report's owner may attach a photo.
func (s *PhotoService) GetPreSignedURL(ctx context.Context, userID, itemID, contentType string) (*UploadResponse, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}
	if item.OwnerID != userID {
		return nil, fmt.Errorf("user is not the owner of this item")
	}

	s3Key := fmt.Sprintf("items/%s.jpg", itemID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	photoURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.awsRegion, s3Key)
	if err := s.itemRepo.UpdatePhotoURL(ctx, itemID, photoURL); err != nil {
		return nil, fmt.Errorf("failed to record photo url: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		PhotoURL:  photoURL,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}
