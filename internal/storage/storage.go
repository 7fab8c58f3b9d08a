package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

type Uploader interface {
	// Upload stores r under objectName and returns a URL for the stored object.
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}

// PublicURL builds the public https URL GCS serves objectName from.
func PublicURL(bucket, objectName string) string {
	parts := strings.Split(objectName, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(parts, "/"))
}

// CVObjectName is the object key a published CV document is stored under.
// Publishing the same CV again overwrites the previous document.
func CVObjectName(userID, cvID int64) string {
	return fmt.Sprintf("cvs/%d/%d.pdf", userID, cvID)
}
