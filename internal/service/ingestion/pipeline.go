// internal/service/ingestion/pipeline.go
package ingestion

import (
	"bytes"
	"fmt"
	"time"

	"customer-lookup-service/internal/domain/customer"
	xerrors "customer-lookup-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Result is the outcome of one ingestion. Records keep source row order.
type Result struct {
	Kind       customer.SourceKind
	Records    []customer.CustomerRecord
	Rejected   int
	Rejections map[RejectReason]int
	Unmapped   []string
}

type Pipeline struct {
	logger *zap.Logger
}

func NewPipeline(logger *zap.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Ingest parses a whole source. Either every surviving row is returned or the
// load fails as a unit; a rejected row is never an error.
func (p *Pipeline) Ingest(kind customer.SourceKind, data []byte) (*Result, error) {
	start := time.Now()

	var (
		table *Table
		err   error
	)
	switch kind {
	case customer.SourceKindText:
		table, err = ParseText(data)
	case customer.SourceKindSpreadsheet:
		table, err = ParseSpreadsheet(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", xerrors.ErrUnsupportedSource, kind)
	}
	if err != nil {
		return nil, err
	}

	result, err := p.normalize(kind, table)
	if err != nil {
		return nil, err
	}

	p.logger.Info("source ingested",
		zap.String("kind", string(kind)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("records", len(result.Records)),
		zap.Int("rejected", result.Rejected),
		zap.Any("rejections", result.Rejections),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

func (p *Pipeline) normalize(kind customer.SourceKind, table *Table) (*Result, error) {
	columns := BuildColumnMap(table.Headers)
	if columns.Mapped() == 0 {
		return nil, fmt.Errorf("%w: header row has no recognised columns", xerrors.ErrMalformedSource)
	}

	result := &Result{
		Kind:       kind,
		Records:    make([]customer.CustomerRecord, 0, len(table.Rows)),
		Rejections: make(map[RejectReason]int),
	}
	for i, f := range columns {
		if f == FieldNone && CleanHeader(table.Headers[i]) != "" {
			result.Unmapped = append(result.Unmapped, CleanHeader(table.Headers[i]))
		}
	}
	if missing := columns.Missing(); len(missing) > 0 {
		p.logger.Warn("source lacks required columns, every row will be rejected",
			zap.Strings("missing", missing),
		)
	}
	if len(result.Unmapped) > 0 {
		p.logger.Debug("ignoring unmapped columns", zap.Strings("headers", result.Unmapped))
	}

	for i, row := range table.Rows {
		rec, reason := NormalizeRow(i+1, row, columns)
		if reason != RejectNone {
			result.Rejected++
			result.Rejections[reason]++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}
