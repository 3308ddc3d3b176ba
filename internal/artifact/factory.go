package artifact

import (
	"context"
	"fmt"
	"os"

	s3artifact "fitrecon/internal/infra/artifact/s3"
)

// Open selects a Source implementation using environment variables.
//
//	FITRECON_ARTIFACT_DRIVER: fs|s3|memory (default fs)
//	FITRECON_ARTIFACT_PATH: artifact file when driver=fs (default ./fft_combined.json)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (Source, error) {
	driver := os.Getenv("FITRECON_ARTIFACT_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("FITRECON_ARTIFACT_PATH")), nil
	case DriverS3:
		return s3artifact.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %s", driver)
	}
}
