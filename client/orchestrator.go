package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"time"

	"imgpress/domain"

	"golang.org/x/sync/errgroup"
)

// FileState is the per-file lifecycle state.
type FileState string

const (
	StatePending    FileState = "pending"
	StateProcessing FileState = "processing"
	StateCompleted  FileState = "completed"
	StateError      FileState = "error"
)

// OptimizeResult mirrors a successful /api/optimize response with the image
// payload already decoded.
type OptimizeResult struct {
	OriginalSize     int
	OptimizedSize    int
	CompressionRatio int
	ProcessingTime   int64
	Data             []byte
}

// FileJob tracks one file through the pipeline. There is no automatic retry:
// a job that reaches StateError stays there until resubmitted.
type FileJob struct {
	Name     string
	MIMEType string
	Data     []byte

	mu     sync.Mutex
	state  FileState
	result *OptimizeResult
	err    error
}

// State returns the job's current lifecycle state.
func (j *FileJob) State() FileState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Result returns the optimization result, or nil while not completed.
func (j *FileJob) Result() *OptimizeResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Err returns the failure that moved the job to StateError, if any.
func (j *FileJob) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func (j *FileJob) setProcessing() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = StateProcessing
}

func (j *FileJob) setCompleted(result *OptimizeResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = StateCompleted
	j.result = result
	j.err = nil
}

func (j *FileJob) setError(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = StateError
	j.err = err
}

// Orchestrator drives per-file upload sequencing against a running server
// and triggers archive packaging once uploads complete.
type Orchestrator struct {
	baseURL    string
	httpClient *http.Client
	settings   domain.OptimizationSettings

	mu   sync.Mutex
	jobs []*FileJob
}

// NewOrchestrator creates an Orchestrator submitting to the given base URL
// with one shared settings document for all files.
func NewOrchestrator(baseURL string, settings domain.OptimizationSettings) *Orchestrator {
	return &Orchestrator{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		settings:   settings,
	}
}

// Add registers a file in StatePending.
func (o *Orchestrator) Add(name, mimeType string, data []byte) *FileJob {
	job := &FileJob{
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
		state:    StatePending,
	}

	o.mu.Lock()
	o.jobs = append(o.jobs, job)
	o.mu.Unlock()

	return job
}

// Jobs returns a snapshot of all registered jobs in submission order.
func (o *Orchestrator) Jobs() []*FileJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*FileJob(nil), o.jobs...)
}

// OptimizeAll submits every pending job sequentially, one request per file.
// A failed file does not block the others.
func (o *Orchestrator) OptimizeAll(ctx context.Context) {
	for _, job := range o.Jobs() {
		if job.State() != StatePending {
			continue
		}
		o.optimizeOne(ctx, job)
	}
}

// OptimizeAllConcurrent submits pending jobs with at most limit in flight.
// limit <= 0 means no throttling.
func (o *Orchestrator) OptimizeAllConcurrent(ctx context.Context, limit int) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, job := range o.Jobs() {
		if job.State() != StatePending {
			continue
		}
		job := job
		g.Go(func() error {
			o.optimizeOne(ctx, job)
			return nil
		})
	}

	_ = g.Wait()
}

func (o *Orchestrator) optimizeOne(ctx context.Context, job *FileJob) {
	job.setProcessing()

	result, err := o.postOptimize(ctx, job)
	if err != nil {
		job.setError(err)
		return
	}
	job.setCompleted(result)
}

type optimizeResponse struct {
	Success          bool   `json:"success"`
	OriginalSize     int    `json:"originalSize"`
	OptimizedSize    int    `json:"optimizedSize"`
	CompressionRatio int    `json:"compressionRatio"`
	ProcessingTime   int64  `json:"processingTime"`
	OptimizedImage   string `json:"optimizedImage"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (o *Orchestrator) postOptimize(ctx context.Context, job *FileJob) (*OptimizeResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := createImagePart(mw, "image", job.Name, job.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}
	if _, err := part.Write(job.Data); err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}

	settingsJSON, err := json.Marshal(o.settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if err := mw.WriteField("settings", string(settingsJSON)); err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/optimize", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optimize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var payload optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode optimize response: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(payload.OptimizedImage)
	if err != nil {
		return nil, fmt.Errorf("decode optimized image: %w", err)
	}

	return &OptimizeResult{
		OriginalSize:     payload.OriginalSize,
		OptimizedSize:    payload.OptimizedSize,
		CompressionRatio: payload.CompressionRatio,
		ProcessingTime:   payload.ProcessingTime,
		Data:             data,
	}, nil
}

// DownloadArchive re-uploads every completed output to /api/download-zip and
// returns the ZIP stream. It fails when no job has completed.
func (o *Orchestrator) DownloadArchive(ctx context.Context) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	completed := 0
	for _, job := range o.Jobs() {
		if job.State() != StateCompleted {
			continue
		}
		result := job.Result()

		part, err := createImagePart(mw, "files", job.Name, job.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("build multipart request: %w", err)
		}
		if _, err := part.Write(result.Data); err != nil {
			return nil, fmt.Errorf("build multipart request: %w", err)
		}
		completed++
	}

	if completed == 0 {
		return nil, fmt.Errorf("no completed files to archive")
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/download-zip", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download-zip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	return io.ReadAll(resp.Body)
}

// createImagePart opens a form-data part carrying the declared image MIME
// type; multipart.Writer.CreateFormFile would pin application/octet-stream.
func createImagePart(mw *multipart.Writer, field, filename, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if mimeType != "" {
		h.Set("Content-Type", mimeType)
	}
	return mw.CreatePart(h)
}

func decodeError(resp *http.Response) error {
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return fmt.Errorf("server returned %d: %s (%s)", resp.StatusCode, payload.Message, payload.Code)
}
