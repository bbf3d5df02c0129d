package firebase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and its storage bucket
type App struct {
	FirebaseApp *firebase.App
	Bucket      *storage.BucketHandle
}

// InitFirebase initializes the Firebase application and the Cloud
// Storage bucket used for image uploads
func InitFirebase(ctx context.Context, credentialsPath, bucketName string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase storage: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting storage bucket: %w", err)
	}

	return &App{FirebaseApp: app, Bucket: bucket}, nil
}

// UploadFile pushes a staged local file into the bucket and returns a
// long-lived signed read URL. The local file is removed whether the
// upload succeeds or not.
func (a *App) UploadFile(ctx context.Context, localFilePath string) (string, error) {
	defer os.Remove(localFilePath)

	f, err := os.Open(localFilePath)
	if err != nil {
		return "", fmt.Errorf("unable to open staged file: %w", err)
	}
	defer f.Close()

	objectName := path.Base(localFilePath)
	writer := a.Bucket.Object(objectName).NewWriter(ctx)
	if _, err = io.Copy(writer, f); err != nil {
		writer.Close()
		return "", fmt.Errorf("unable to upload image: %w", err)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("unable to upload image: %w", err)
	}

	signedURL, err := a.Bucket.SignedURL(objectName, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		return "", fmt.Errorf("unable to sign object URL: %w", err)
	}
	return signedURL, nil
}

// DeleteByURL removes a previously uploaded object, resolving the
// object name from its signed URL. Failures are returned, not fatal;
// callers treat stale objects as acceptable.
func (a *App) DeleteByURL(ctx context.Context, fileURL string) error {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return err
	}
	objectName := path.Base(strings.SplitN(parsed.Path, "?", 2)[0])
	if objectName == "" || objectName == "/" || objectName == "." {
		return fmt.Errorf("cannot resolve object name from URL")
	}
	return a.Bucket.Object(objectName).Delete(ctx)
}
