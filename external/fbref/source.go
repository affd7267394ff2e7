package fbref

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
)

// Source serves raw category tables for a competition.
type Source struct {
	client   *Client
	logger   *logging.Logger
	progress io.Writer
}

func NewSource(client *Client, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{client: client, logger: logger}
}

// WithProgress writes one "Fetching <category>: <url>" line to w before each
// table is fetched.
func (s *Source) WithProgress(w io.Writer) *Source {
	s.progress = w
	return s
}

func (s *Source) FetchTable(ctx context.Context, comp competition.Competition, category competition.Category) (statframe.Frame, error) {
	path, err := comp.Path(category)
	if err != nil {
		return statframe.Frame{}, err
	}

	fullURL := s.client.URL(path)
	if s.progress != nil {
		fmt.Fprintf(s.progress, "Fetching %s: %s\n", category, fullURL)
	}
	s.logger.InfoContext(ctx, "fetching category table", "category", string(category), "url", fullURL)
	page, err := s.client.FetchPage(ctx, path)
	if err != nil {
		return statframe.Frame{}, fmt.Errorf("fetch %s table: %w", category, err)
	}

	frame, err := ExtractPlayerTable(string(page.Body))
	if err != nil {
		var notFound *NoTableFoundError
		if errors.As(err, &notFound) {
			notFound.URL = page.URL
		}
		return statframe.Frame{}, fmt.Errorf("extract %s table: %w", category, err)
	}

	s.logger.InfoContext(ctx, "category table parsed",
		"category", string(category),
		"rows", frame.Len(),
		"columns", len(frame.Columns),
		"from_cache", page.FromCache,
	)
	return frame, nil
}
