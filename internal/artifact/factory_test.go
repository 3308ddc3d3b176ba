package artifact

import (
	"context"
	"testing"
)

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("FITRECON_ARTIFACT_DRIVER", "")
	t.Setenv("FITRECON_ARTIFACT_PATH", "")
	src, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if src.Driver() != DriverFilesystem {
		t.Fatalf("expected filesystem driver, got %s", src.Driver())
	}
}

func TestOpenSelectsMemory(t *testing.T) {
	t.Setenv("FITRECON_ARTIFACT_DRIVER", "memory")
	src, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if src.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", src.Driver())
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FITRECON_ARTIFACT_DRIVER", "ftp")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("FITRECON_ARTIFACT_DRIVER", "s3")
	t.Setenv("FITRECON_ARTIFACT_S3_BUCKET", "")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected error when bucket is unset")
	}
}
