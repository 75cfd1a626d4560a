package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"auditarmor/internal/chain"
	"auditarmor/internal/evidence"
	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/requestcontext"
)

// ChainAppender records events in the audit chain.
type ChainAppender interface {
	Append(ctx context.Context, event string, payload chain.Payload) (chain.Entry, error)
}

// Service hashes uploads and anchors them in the audit chain. No receipt is
// issued unless the chain append succeeded.
type Service struct {
	chain  ChainAppender
	logger *slog.Logger
}

func New(c ChainAppender, logger *slog.Logger) *Service {
	return &Service{chain: c, logger: logger}
}

// Upload streams content through SHA-256 and appends an EVIDENCE_UPLOAD
// entry carrying the filename, digest and size.
func (s *Service) Upload(ctx context.Context, filename string, content io.Reader) (*evidence.Receipt, error) {
	name := cleanFilename(filename)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "filename is required")
	}

	h := sha256.New()
	size, err := io.Copy(h, content)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read upload")
	}
	sum := hex.EncodeToString(h.Sum(nil))

	entry, err := s.chain.Append(ctx, evidence.EventUpload, chain.Payload{
		"filename": chain.String(name),
		"sha256":   chain.String(sum),
		"size":     chain.Int(size),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record evidence in audit chain")
	}

	s.logger.InfoContext(ctx, "evidence recorded",
		"request_id", requestcontext.RequestID(ctx),
		"filename", name,
		"sha256", sum,
		"size", size,
		"chain_hash", entry.Hash,
	)

	return &evidence.Receipt{
		ID:        sum[:12],
		Filename:  name,
		Status:    evidence.StatusAdmissible,
		SHA256:    sum,
		Size:      size,
		Timestamp: entry.Timestamp,
		ChainHash: entry.Hash,
	}, nil
}

// cleanFilename drops any client-side directory components.
func cleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}
