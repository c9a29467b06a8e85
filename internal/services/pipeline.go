package services

import (
	"context"
	"distance-matrix-service/internal/domain"
	"distance-matrix-service/internal/platform/obs"
	"distance-matrix-service/internal/ports"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultLabel names matrix artifacts when the caller does not set one.
const DefaultLabel = "dist_matrix_data"

// MatrixJob is one matrix computation: the parsed queries plus the display
// aliases for both axes.
type MatrixJob struct {
	Origins          domain.Query
	Destinations     domain.Query
	Options          domain.Options
	OriginNames      []string
	DestinationNames []string
}

// MatrixResult is the outcome of one pipeline run. Artifact is the base name
// shared by the archived reply and the exported matrix; ExportPath is empty
// when exporting is disabled.
type MatrixResult struct {
	Matrix      *domain.Matrix
	Artifact    string
	RequestTime string
	ExportPath  string
}

// Pipeline runs the full flow for one job: validate, fetch, gate on the
// service status, stamp the request time, archive the raw reply, assemble
// the matrix (persisting cells when a Store is set), export. A nil Archiver
// or Exporter skips that stage. Runs are synchronous and fail fast; a
// caller-imposed context timeout needs no cleanup here.
type Pipeline struct {
	Provider ports.MatrixProvider
	Archiver ports.ResponseArchiver
	Exporter ports.MatrixExporter
	Store    ports.DistanceStore
	Logger   *zap.Logger
	Label    string
	Now      func() time.Time
}

func (p *Pipeline) artifactLabel() string {
	if p.Label == "" {
		return DefaultLabel
	}
	return p.Label
}

func (p *Pipeline) clock() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Run executes one matrix job.
func (p *Pipeline) Run(ctx context.Context, job MatrixJob) (_ *MatrixResult, err error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer obs.Time(ctx, logger, "pipeline.Run")(&err)

	req, err := domain.NewRequest(job.Origins, job.Destinations, job.Options, p.clock())
	if err != nil {
		return nil, err
	}

	// Alias counts are checked against the queries before any network cost.
	if len(job.OriginNames) != len(job.Origins) {
		return nil, &domain.InvalidQueryError{
			Field:  "origin_names",
			Value:  len(job.OriginNames),
			Reason: fmt.Sprintf("alias count must match %d origins", len(job.Origins)),
		}
	}
	if len(job.DestinationNames) != len(job.Destinations) {
		return nil, &domain.InvalidQueryError{
			Field:  "destination_names",
			Value:  len(job.DestinationNames),
			Reason: fmt.Sprintf("alias count must match %d destinations", len(job.Destinations)),
		}
	}

	resp, err := p.Provider.FetchMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch matrix: %w", err)
	}

	if resp.Status != domain.StatusOK {
		return nil, &domain.UpstreamError{Status: resp.Status, Message: resp.ErrorMessage}
	}

	resp.RequestTime = p.clock().UTC().Format(time.RFC3339)

	name := p.artifactLabel()
	if p.Archiver != nil {
		name, err = p.Archiver.Archive(ctx, resp, p.artifactLabel(), req.Terms())
		if err != nil {
			return nil, fmt.Errorf("archive response: %w", err)
		}
	}

	builder := &MatrixBuilder{Store: p.Store, Logger: logger}
	matrix, err := builder.Build(ctx, resp, job.OriginNames, job.DestinationNames)
	if err != nil {
		return nil, err
	}

	result := &MatrixResult{
		Matrix:      matrix,
		Artifact:    name,
		RequestTime: resp.RequestTime,
	}

	if p.Exporter != nil {
		path, err := p.Exporter.Export(ctx, matrix, name)
		if err != nil {
			return nil, fmt.Errorf("export matrix: %w", err)
		}
		result.ExportPath = path
		logger.Info("matrix exported", zap.String("path", path))
	}

	return result, nil
}
