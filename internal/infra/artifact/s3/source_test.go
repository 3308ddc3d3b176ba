package s3

import (
	"context"
	"errors"
	"testing"

	"fitrecon/internal/artifact/core"
	"fitrecon/pkg/domain"
)

func TestFetchMissingObjectMapsToNotFound(t *testing.T) {
	src := NewMockForTests("")
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutThenFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMockForTests("artifacts/fft_combined.json")
	records := []domain.Participant{
		{Name: "Bob", PhoneNumber: "98765432", Gender: domain.GenderMale, DOB: "1949-01-01", Location: "CT Hub"},
	}
	records[0].SetCycle("2025", domain.StationMeasurements{Squat: "12"})

	if err := src.Put(ctx, records); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := src.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Measurements["2025"].Squat != "12" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if src.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", src.Driver())
	}
}

func TestDecodeChunkedLite(t *testing.T) {
	payload := `[{"name":"Bob"}]`
	chunked := "10\r\n" + payload + "\r\n0\r\n\r\n"
	dec, ok := decodeChunkedLite([]byte(chunked))
	if !ok || string(dec) != payload {
		t.Fatalf("chunked body not decoded: ok=%v got %q", ok, dec)
	}

	// Chunk-signature extensions on the size line are tolerated.
	signed := "10;chunk-signature=deadbeef\r\n" + payload + "\r\n0\r\n\r\n"
	dec, ok = decodeChunkedLite([]byte(signed))
	if !ok || string(dec) != payload {
		t.Fatalf("signed chunked body not decoded: ok=%v got %q", ok, dec)
	}

	// A plain JSON body must pass through untouched.
	if _, ok := decodeChunkedLite([]byte(payload)); ok {
		t.Fatalf("plain body misdetected as chunked")
	}
}

func TestOpenFromEnvRequiresBucket(t *testing.T) {
	t.Setenv("FITRECON_ARTIFACT_S3_BUCKET", "")
	if _, err := OpenFromEnv(context.Background()); err == nil {
		t.Fatalf("expected missing-bucket error")
	}
}
