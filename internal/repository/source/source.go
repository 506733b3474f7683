// internal/repository/source/source.go
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"customer-lookup-service/internal/domain/customer"
	xerrors "customer-lookup-service/internal/pkg/errors"
)

// Payload is a raw source as fetched or uploaded.
type Payload struct {
	Name        string
	ContentType string
	Data        []byte
}

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads url in a single attempt. Transport failures and non-2xx
// statuses are reported as ErrSourceUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %v", xerrors.ErrInvalidInput, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", xerrors.ErrSourceUnavailable, resp.StatusCode)
	}

	data, err := ReadLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, err
	}
	return &Payload{
		Name:        path.Base(req.URL.Path),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ReadLimited reads r fully, failing when it exceeds maxBytes (0 means unlimited).
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", xerrors.ErrSourceUnavailable, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrSourceUnavailable, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: source exceeds %d bytes", xerrors.ErrMalformedSource, maxBytes)
	}
	return data, nil
}

// DetectKind picks the parser for a payload from its content, then its name.
// Legacy binary workbooks are not supported.
func DetectKind(p *Payload) (customer.SourceKind, error) {
	switch {
	case bytes.HasPrefix(p.Data, zipMagic):
		return customer.SourceKindSpreadsheet, nil
	case bytes.HasPrefix(p.Data, oleMagic):
		return "", fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", xerrors.ErrUnsupportedSource)
	}

	switch strings.ToLower(path.Ext(p.Name)) {
	case ".xlsx", ".xlsm", ".xltx":
		return customer.SourceKindSpreadsheet, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", xerrors.ErrUnsupportedSource)
	}
	return customer.SourceKindText, nil
}

// FromUpload wraps an uploaded file as a payload.
func FromUpload(name, contentType string, r io.Reader, maxBytes int64) (*Payload, error) {
	data, err := ReadLimited(r, maxBytes)
	if err != nil {
		return nil, err
	}
	return &Payload{Name: name, ContentType: contentType, Data: data}, nil
}
