package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/bs2tutor/internal/logger"
)

const (
	maxErrorBodyBytes = 1024
	sourceTypeKey     = "metadata.source_type"
)

// QdrantConfig points the retriever at one collection.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorDim  int
	Timeout    time.Duration
}

// QdrantRetriever searches a Qdrant collection over its REST API. Points
// carry the chunk as payload {page_content, metadata{source_type, file_name, page}}.
type QdrantRetriever struct {
	log     *logger.Logger
	cfg     QdrantConfig
	baseURL string
	embed   Embedder
	http    *http.Client
}

type qdrantEnvelope struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
	Time   float64         `json:"time"`
}

type qdrantPoint struct {
	ID      json.RawMessage `json:"id"`
	Score   float64         `json:"score"`
	Payload Chunk           `json:"payload"`
}

// NewQdrantRetriever checks that the collection exists and matches the
// configured vector size before returning.
func NewQdrantRetriever(ctx context.Context, log *logger.Logger, cfg QdrantConfig, embed Embedder) (*QdrantRetriever, error) {
	if log == nil {
		log = logger.Nop()
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if strings.TrimSpace(cfg.Collection) == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}
	if embed == nil {
		return nil, fmt.Errorf("embedder required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	r := &QdrantRetriever{
		log:     log.With("service", "QdrantRetriever"),
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		embed:   embed,
		http:    &http.Client{Timeout: timeout},
	}
	if err := r.verifyReady(ctx); err != nil {
		return nil, err
	}

	log.Info("Qdrant retriever selected", "url", r.baseURL, "collection", cfg.Collection, "vector_dim", cfg.VectorDim)
	return r, nil
}

// Search embeds query and runs a filtered vector search. An empty query
// scrolls the collection instead, since there is nothing to embed.
func (r *QdrantRetriever) Search(ctx context.Context, query string, k int, filter Filter) ([]Chunk, error) {
	if k <= 0 {
		return []Chunk{}, nil
	}
	if strings.TrimSpace(query) == "" {
		return r.scroll(ctx, k, filter)
	}

	const op = "search"
	vec, err := r.embed.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if r.cfg.VectorDim > 0 && len(vec) != r.cfg.VectorDim {
		return nil, opErr(op, OperationErrorValidation,
			fmt.Sprintf("query vector dimension mismatch: expected=%d got=%d", r.cfg.VectorDim, len(vec)), nil)
	}

	req := map[string]any{
		"vector":       vec,
		"limit":        k,
		"with_payload": true,
		"with_vector":  false,
	}
	if f := translateFilter(filter); f != nil {
		req["filter"] = f
	}

	var points []qdrantPoint
	if err := r.doJSON(ctx, op, http.MethodPost, r.collectionPath("/points/search"), req, &points); err != nil {
		return nil, err
	}
	r.log.Debug("qdrant search", "k", k, "source_type", filter.SourceType, "hits", len(points))
	return chunksOf(points), nil
}

func (r *QdrantRetriever) scroll(ctx context.Context, k int, filter Filter) ([]Chunk, error) {
	const op = "scroll"
	req := map[string]any{
		"limit":        k,
		"with_payload": true,
		"with_vector":  false,
	}
	if f := translateFilter(filter); f != nil {
		req["filter"] = f
	}

	var result struct {
		Points []qdrantPoint `json:"points"`
	}
	if err := r.doJSON(ctx, op, http.MethodPost, r.collectionPath("/points/scroll"), req, &result); err != nil {
		return nil, err
	}
	return chunksOf(result.Points), nil
}

func (r *QdrantRetriever) verifyReady(ctx context.Context) error {
	const op = "bootstrap_verify"

	readyReq, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/readyz", nil)
	if err != nil {
		return opErr(op, OperationErrorTransportFailed, "build ready request failed", err)
	}
	r.authorize(readyReq)
	readyResp, err := r.http.Do(readyReq)
	if err != nil {
		return classifyHTTPCallError(op, "qdrant ready check failed", err)
	}
	_ = readyResp.Body.Close()
	if readyResp.StatusCode < 200 || readyResp.StatusCode >= 300 {
		return &OperationError{
			Code:       OperationErrorQueryFailed,
			Operation:  op,
			StatusCode: readyResp.StatusCode,
			Message:    fmt.Sprintf("qdrant ready check returned status=%d", readyResp.StatusCode),
		}
	}

	var result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size int `json:"size"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	}
	if err := r.doJSON(ctx, op, http.MethodGet, r.collectionPath(""), nil, &result); err != nil {
		return err
	}
	size := result.Config.Params.Vectors.Size
	if r.cfg.VectorDim > 0 && size != 0 && size != r.cfg.VectorDim {
		return &OperationError{
			Code:      OperationErrorValidation,
			Operation: op,
			Message: fmt.Sprintf("qdrant collection %q vector size mismatch: expected=%d actual=%d",
				r.cfg.Collection, r.cfg.VectorDim, size),
		}
	}
	return nil
}

func (r *QdrantRetriever) doJSON(ctx context.Context, op, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return opErr(op, OperationErrorEncodeFailed, "encode request failed", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return opErr(op, OperationErrorTransportFailed, "build request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	r.authorize(req)

	resp, err := r.http.Do(req)
	if err != nil {
		return classifyHTTPCallError(op, "qdrant request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return opErr(op, OperationErrorDecodeFailed, "read response failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{
			Code:       OperationErrorQueryFailed,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("qdrant http status=%d body=%q", resp.StatusCode, truncateBody(raw)),
		}
	}

	var envelope qdrantEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode qdrant envelope failed", err)
	}
	if statusErr := parseEnvelopeStatus(envelope.Status); statusErr != "" {
		return &OperationError{
			Code:       OperationErrorQueryFailed,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    statusErr,
		}
	}

	if out == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode qdrant result failed", err)
	}
	return nil
}

func (r *QdrantRetriever) authorize(req *http.Request) {
	if r.cfg.APIKey != "" {
		req.Header.Set("api-key", r.cfg.APIKey)
	}
}

func (r *QdrantRetriever) collectionPath(suffix string) string {
	return "/collections/" + r.cfg.Collection + suffix
}

func translateFilter(f Filter) map[string]any {
	if f.IsZero() {
		return nil
	}
	return map[string]any{
		"must": []any{
			map[string]any{
				"key":   sourceTypeKey,
				"match": map[string]any{"value": f.SourceType},
			},
		},
	}
}

func chunksOf(points []qdrantPoint) []Chunk {
	out := make([]Chunk, 0, len(points))
	for _, p := range points {
		if strings.TrimSpace(p.Payload.Content) == "" {
			continue
		}
		out = append(out, p.Payload)
	}
	return out
}

func parseEnvelopeStatus(raw json.RawMessage) string {
	status := strings.TrimSpace(string(raw))
	if status == "" || status == "null" {
		return ""
	}

	var statusString string
	if err := json.Unmarshal(raw, &statusString); err == nil {
		if strings.EqualFold(statusString, "ok") {
			return ""
		}
		return fmt.Sprintf("qdrant status=%q", statusString)
	}

	var statusObject struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &statusObject); err == nil && strings.TrimSpace(statusObject.Error) != "" {
		return strings.TrimSpace(statusObject.Error)
	}
	return fmt.Sprintf("qdrant status=%s", status)
}

func truncateBody(raw []byte) string {
	if len(raw) <= maxErrorBodyBytes {
		return string(raw)
	}
	return string(raw[:maxErrorBodyBytes]) + "..."
}
