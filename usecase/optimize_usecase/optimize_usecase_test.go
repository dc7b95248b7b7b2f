package optimize_usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"imgpress/domain"
	"imgpress/utils/errors"
	"imgpress/utils/logger"
)

// --- Mock implementations ---

type mockCodecPort struct {
	outcome *domain.OptimizationOutcome
	err     error
	calls   int
}

func (m *mockCodecPort) Transcode(ctx context.Context, data []byte, sourceMIMEType string, settings domain.OptimizationSettings) (*domain.OptimizationOutcome, error) {
	m.calls++
	return m.outcome, m.err
}

type mockLedgerPort struct {
	recorded []domain.LedgerEntry
	err      error
}

func (m *mockLedgerPort) Record(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	if m.err != nil {
		return domain.LedgerEntry{}, m.err
	}
	entry.ID = int64(len(m.recorded) + 1)
	m.recorded = append(m.recorded, entry)
	return entry, nil
}

func (m *mockLedgerPort) Recent(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	return m.recorded, nil
}

// --- Tests ---

func testFile() domain.UploadedFile {
	return domain.UploadedFile{
		Name:     "photo.jpg",
		MIMEType: "image/jpeg",
		Data:     []byte("jpeg-bytes"),
	}
}

func testOutcome() *domain.OptimizationOutcome {
	return &domain.OptimizationOutcome{
		OriginalSize:     1000,
		OptimizedSize:    400,
		CompressionRatio: 60,
		ProcessingTime:   25 * time.Millisecond,
		Format:           domain.FormatJPEG,
		Data:             []byte("smaller-jpeg-bytes"),
	}
}

func TestExecute_Success(t *testing.T) {
	logger.InitLogger()

	codec := &mockCodecPort{outcome: testOutcome()}
	ledger := &mockLedgerPort{}
	uc := NewOptimizeImageUsecase(codec, ledger, nil)

	outcome, err := uc.Execute(context.Background(), testFile(), domain.OptimizationSettings{Format: domain.FormatJPEG, Quality: 70})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.OptimizedSize != 400 {
		t.Errorf("expected optimized size 400, got %d", outcome.OptimizedSize)
	}

	if len(ledger.recorded) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger.recorded))
	}
	entry := ledger.recorded[0]
	if entry.OriginalName != "photo.jpg" {
		t.Errorf("expected original name photo.jpg, got %s", entry.OriginalName)
	}
	if entry.Format != domain.FormatJPEG {
		t.Errorf("expected format jpeg, got %s", entry.Format)
	}
	if entry.Quality != 70 {
		t.Errorf("expected quality 70, got %d", entry.Quality)
	}
	if entry.ProcessingTime != 25 {
		t.Errorf("expected processing time 25ms, got %d", entry.ProcessingTime)
	}
}

func TestExecute_EmptyFile(t *testing.T) {
	logger.InitLogger()

	uc := NewOptimizeImageUsecase(&mockCodecPort{}, nil, nil)

	_, err := uc.Execute(context.Background(), domain.UploadedFile{Name: "empty.jpg"}, domain.DefaultOptimizationSettings())
	if err == nil {
		t.Fatal("expected error for empty file")
	}

	appErr, ok := err.(*errors.AppContextError)
	if !ok {
		t.Fatalf("expected AppContextError, got %T", err)
	}
	if appErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", appErr.Code)
	}
	if !errors.IsNoFile(err) {
		t.Error("expected error chain to carry ErrNoFile")
	}
}

func TestExecute_InvalidSettings(t *testing.T) {
	logger.InitLogger()

	codec := &mockCodecPort{outcome: testOutcome()}
	uc := NewOptimizeImageUsecase(codec, nil, nil)

	_, err := uc.Execute(context.Background(), testFile(), domain.OptimizationSettings{Format: "tiff", Quality: 50})
	if err == nil {
		t.Fatal("expected error for invalid settings")
	}
	if codec.calls != 0 {
		t.Error("codec must not be called for invalid settings")
	}

	appErr, ok := err.(*errors.AppContextError)
	if !ok {
		t.Fatalf("expected AppContextError, got %T", err)
	}
	if appErr.HTTPStatusCode() != 400 {
		t.Errorf("expected status 400, got %d", appErr.HTTPStatusCode())
	}
	if !errors.IsInvalidSettings(err) {
		t.Error("expected error chain to carry ErrInvalidSettings")
	}
}

func TestExecute_CodecFailure(t *testing.T) {
	logger.InitLogger()

	codec := &mockCodecPort{err: fmt.Errorf("decode image: corrupt header")}
	ledger := &mockLedgerPort{}
	uc := NewOptimizeImageUsecase(codec, ledger, nil)

	_, err := uc.Execute(context.Background(), testFile(), domain.DefaultOptimizationSettings())
	if err == nil {
		t.Fatal("expected error for codec failure")
	}

	appErr, ok := err.(*errors.AppContextError)
	if !ok {
		t.Fatalf("expected AppContextError, got %T", err)
	}
	if appErr.Code != "PROCESSING_ERROR" {
		t.Errorf("expected PROCESSING_ERROR, got %s", appErr.Code)
	}
	if appErr.HTTPStatusCode() != 500 {
		t.Errorf("expected status 500, got %d", appErr.HTTPStatusCode())
	}

	if len(ledger.recorded) != 0 {
		t.Error("failed optimization must not be recorded")
	}
}

func TestExecute_LedgerFailureDoesNotFailRequest(t *testing.T) {
	logger.InitLogger()

	codec := &mockCodecPort{outcome: testOutcome()}
	ledger := &mockLedgerPort{err: fmt.Errorf("ledger full")}
	uc := NewOptimizeImageUsecase(codec, ledger, nil)

	outcome, err := uc.Execute(context.Background(), testFile(), domain.DefaultOptimizationSettings())
	if err != nil {
		t.Fatalf("ledger failure must not fail the request: %v", err)
	}
	if outcome == nil {
		t.Fatal("expected outcome despite ledger failure")
	}
}

func TestExecuteBatch_ContinuesPastFailures(t *testing.T) {
	logger.InitLogger()

	// The codec fails on every call; all files must still get a result.
	codec := &mockCodecPort{err: fmt.Errorf("encode JPEG: boom")}
	uc := NewOptimizeImageUsecase(codec, nil, nil)

	files := []domain.UploadedFile{
		{Name: "a.jpg", MIMEType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", MIMEType: "image/jpeg", Data: []byte("b")},
		{Name: "c.jpg", MIMEType: "image/jpeg", Data: []byte("c")},
	}

	results := uc.ExecuteBatch(context.Background(), files, domain.DefaultOptimizationSettings())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, result := range results {
		if result.Err == nil {
			t.Errorf("result %d: expected error", i)
		}
		if result.Filename != files[i].Name {
			t.Errorf("result %d: expected filename %s, got %s", i, files[i].Name, result.Filename)
		}
	}
	if codec.calls != 3 {
		t.Errorf("expected 3 codec calls, got %d", codec.calls)
	}
}

func TestExecuteBatch_MixedResults(t *testing.T) {
	logger.InitLogger()

	codec := &mockCodecPort{outcome: testOutcome()}
	ledger := &mockLedgerPort{}
	uc := NewOptimizeImageUsecase(codec, ledger, nil)

	files := []domain.UploadedFile{
		{Name: "good.jpg", MIMEType: "image/jpeg", Data: []byte("bytes")},
		{Name: "empty.jpg", MIMEType: "image/jpeg"},
	}

	results := uc.ExecuteBatch(context.Background(), files, domain.DefaultOptimizationSettings())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("expected first file to succeed, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("expected second file to fail")
	}
	if len(ledger.recorded) != 1 {
		t.Errorf("expected only the successful file recorded, got %d entries", len(ledger.recorded))
	}
}
