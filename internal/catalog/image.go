package catalog

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// ImagesPrefix is the URL path uploaded files are served under.
	ImagesPrefix = "/images/"

	DefaultMaxUploadBytes int64 = 5 << 20
)

type ImagePolicy string

const (
	PolicyURI    ImagePolicy = "uri"
	PolicyUpload ImagePolicy = "upload"
)

// Upload is an image file part taken from a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

// ImageResolver decides where a product's image reference comes from.
type ImageResolver interface {
	Policy() ImagePolicy
	// Stage checks an upload and picks its final reference without
	// touching the disk. It returns nil when there is nothing to store.
	Stage(up *Upload) (*StagedImage, error)
	// ValidReference reports whether a client-supplied image string is
	// acceptable.
	ValidReference(ref string) bool
}

func NewImageResolver(policy ImagePolicy, dir string, maxBytes int64) (ImageResolver, error) {
	switch policy {
	case PolicyURI:
		return RequireURI{}, nil
	case PolicyUpload, "":
		if dir == "" {
			return nil, fmt.Errorf("upload policy needs an upload directory")
		}
		if maxBytes <= 0 {
			maxBytes = DefaultMaxUploadBytes
		}
		return &AcceptUploadOrURI{Dir: dir, MaxBytes: maxBytes}, nil
	default:
		return nil, fmt.Errorf("unknown image policy %q", policy)
	}
}

// RequireURI accepts only absolute URIs and ignores uploaded files.
type RequireURI struct{}

func (RequireURI) Policy() ImagePolicy { return PolicyURI }

func (RequireURI) Stage(*Upload) (*StagedImage, error) { return nil, nil }

func (RequireURI) ValidReference(ref string) bool { return isAbsoluteURI(ref) }

// AcceptUploadOrURI stores uploaded images under Dir. Without an upload the
// plain image field is used as is.
type AcceptUploadOrURI struct {
	Dir      string
	MaxBytes int64
}

func (*AcceptUploadOrURI) Policy() ImagePolicy { return PolicyUpload }

func (*AcceptUploadOrURI) ValidReference(ref string) bool { return ref != "" }

func (a *AcceptUploadOrURI) Stage(up *Upload) (*StagedImage, error) {
	if up == nil {
		return nil, nil
	}
	if int64(len(up.Data)) > a.MaxBytes {
		return nil, &UploadError{Message: fmt.Sprintf("File too large: limit is %d bytes", a.MaxBytes)}
	}

	mt := mimetype.Detect(up.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, &UploadError{Message: "Only image files are allowed!"}
	}

	name := uuid.NewString() + mt.Extension()
	return &StagedImage{
		Ref:         path.Join(ImagesPrefix, name),
		ContentType: mt.String(),
		path:        filepath.Join(a.Dir, name),
		data:        up.Data,
	}, nil
}

// StagedImage is an accepted upload that has not been written yet.
type StagedImage struct {
	Ref         string
	ContentType string

	path string
	data []byte
}

func (s *StagedImage) Commit() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(s.path, s.data, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}

// Discard removes a committed file. It is a no-op on a nil receiver.
func (s *StagedImage) Discard() {
	if s == nil {
		return
	}
	_ = os.Remove(s.path)
}
