package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
)

const (
	// DefaultCSVPath matches the historical contact log location.
	DefaultCSVPath = "customer_requests.csv"

	timestampLayout = "2006-01-02 15:04:05"
)

var csvHeader = []string{"Name", "Email", "Phone", "Timestamp"}

// CSVSink appends contact records to a CSV file, writing the header row once
// when the file is newly created. A mutex enforces the single-writer-at-a-time
// discipline across sessions sharing one sink.
type CSVSink struct {
	mu   sync.Mutex
	path string
}

func NewCSVSink(path string) (*CSVSink, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("csv sink path is required")
	}
	return &CSVSink{path: path}, nil
}

func (s *CSVSink) Append(_ context.Context, rec contractx.ContactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.path)
	newFile := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open contact log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write contact log header: %w", err)
		}
	}
	row := []string{rec.Name, rec.Email, rec.Phone, rec.CreatedAt.Format(timestampLayout)}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write contact log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush contact log: %w", err)
	}
	return nil
}
