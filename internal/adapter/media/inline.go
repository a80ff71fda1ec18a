package media

import (
	"context"
	"log/slog"

	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
)

// Inline keeps the source itself as the image reference. Used when no media
// host account is configured (local runs and tests).
type Inline struct {
	log *slog.Logger
}

func NewInline() *Inline { return &Inline{log: logging.New("media")} }

func (s *Inline) Upload(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return source, nil
}

func (s *Inline) Destroy(_ context.Context, publicID string) error {
	s.log.Debug("inline media destroy", slog.Int("ref_len", len(publicID)))
	return nil
}

var _ usecase.MediaStore = (*Inline)(nil)
