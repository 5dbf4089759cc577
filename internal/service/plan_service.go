// internal/service/plan_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/replenish-planner/internal/domain"
	"github.com/andresuchdata/replenish-planner/internal/export"
	"github.com/andresuchdata/replenish-planner/internal/planner"
	"github.com/andresuchdata/replenish-planner/internal/repository"
	"github.com/andresuchdata/replenish-planner/internal/sheet"
	"github.com/andresuchdata/replenish-planner/internal/storage"
)

// Workbook source prefixes accepted by ResolveWorkbook.
const (
	SourceS3    = "s3://"
	SourceDrive = "drive://"
)

var (
	ErrArchiveDisabled = errors.New("run archive is not configured")
	ErrStorageDisabled = errors.New("object storage is not configured")
	ErrDriveDisabled   = errors.New("google drive is not configured")
)

// WorkbookFetcher downloads a workbook from a remote folder.
type WorkbookFetcher interface {
	FetchWorkbook(ctx context.Context, ref, dir string) (string, error)
}

// Dependencies are the optional collaborators of PlanService. Nil members
// disable the matching feature.
type Dependencies struct {
	Repo         repository.PlanRepository
	Store        storage.ObjectStorage
	Drive        WorkbookFetcher
	UploadPrefix string
}

type PlanService struct {
	deps Dependencies
}

func NewPlanService(deps Dependencies) *PlanService {
	return &PlanService{deps: deps}
}

// PlanRequest describes one run.
type PlanRequest struct {
	WorkbookPath string
	Settings     planner.Settings
	Options      planner.RunOptions
	OutputXLSX   string
	OutputCSV    string // optional
	Archive      bool
	Upload       bool
}

// PlanResult is what a successful run produced.
type PlanResult struct {
	Report       *planner.Report
	Summary      planner.Summary
	LeadTime     int
	OutputXLSX   string
	OutputCSV    string
	RunID        int64
	UploadedKeys []string
}

// ResolveWorkbook turns a workbook reference into a local path. References
// starting with s3:// are object keys, drive:// are Drive paths or
// "id:<fileID>", anything else is a local file.
func (s *PlanService) ResolveWorkbook(ctx context.Context, ref, downloadDir string) (string, error) {
	switch {
	case strings.HasPrefix(ref, SourceS3):
		if s.deps.Store == nil {
			return "", ErrStorageDisabled
		}
		key := strings.TrimPrefix(ref, SourceS3)
		dest := filepath.Join(downloadDir, filepath.Base(key))
		if err := s.deps.Store.DownloadObject(ctx, key, dest); err != nil {
			return "", fmt.Errorf("failed to fetch workbook %s: %w", key, err)
		}
		log.Info().Str("key", key).Str("path", dest).Msg("workbook downloaded from object storage")
		return dest, nil

	case strings.HasPrefix(ref, SourceDrive):
		if s.deps.Drive == nil {
			return "", ErrDriveDisabled
		}
		return s.deps.Drive.FetchWorkbook(ctx, strings.TrimPrefix(ref, SourceDrive), downloadDir)
	}

	if _, err := os.Stat(ref); err != nil {
		return "", fmt.Errorf("workbook %s not found: %w", ref, err)
	}
	return ref, nil
}

// Plan runs the planner over a local workbook and writes the outputs. Files
// are written only once every platform has been planned.
func (s *PlanService) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	// 1. Load the workbook
	wb, err := sheet.OpenWorkbook(req.WorkbookPath, req.Settings.DataSheet, req.Settings.ConfigSheet)
	if err != nil {
		return nil, err
	}

	// 2. Plan every platform
	pl, err := planner.New(wb, req.Settings, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare planner: %w", err)
	}
	start := time.Now()
	ledger, err := pl.Run(ctx, req.Options)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	report := planner.NewReport(ledger, time.Now())
	result := &PlanResult{
		Report:     report,
		Summary:    report.Summary(),
		LeadTime:   pl.Layout().LeadTime,
		OutputXLSX: req.OutputXLSX,
		OutputCSV:  req.OutputCSV,
	}
	log.Info().
		Int("platforms", result.Summary.Platforms).
		Int("orders", result.Summary.Orders).
		Dur("elapsed", time.Since(start)).
		Msg("planning completed")

	// 3. Export
	rows := report.Rows()
	if err := export.WriteXLSX(req.OutputXLSX, export.DefaultSheet, rows); err != nil {
		return nil, fmt.Errorf("failed to export results: %w", err)
	}
	if req.OutputCSV != "" {
		if err := export.WriteCSV(req.OutputCSV, rows); err != nil {
			return nil, fmt.Errorf("failed to export results: %w", err)
		}
	}

	// 4. Archive
	if req.Archive {
		if s.deps.Repo == nil {
			return result, ErrArchiveDisabled
		}
		run := newPlanRun(req, result)
		if err := s.deps.Repo.SavePlanRun(ctx, run, toSuggestions(report)); err != nil {
			return result, fmt.Errorf("failed to archive run: %w", err)
		}
		result.RunID = run.ID
		log.Info().Int64("run_id", run.ID).Msg("run archived")
	}

	// 5. Upload
	if req.Upload {
		if s.deps.Store == nil {
			return result, ErrStorageDisabled
		}
		for _, p := range []string{req.OutputXLSX, req.OutputCSV} {
			if p == "" {
				continue
			}
			key, err := s.upload(ctx, p)
			if err != nil {
				return result, err
			}
			result.UploadedKeys = append(result.UploadedKeys, key)
		}
	}

	return result, nil
}

func (s *PlanService) upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	key := storage.ObjectKey(s.deps.UploadPrefix, filepath.Base(path))
	if err := s.deps.Store.UploadObject(ctx, key, data); err != nil {
		return "", err
	}
	log.Info().Str("key", key).Int("bytes", len(data)).Msg("output uploaded")
	return key, nil
}

// History lists the most recent archived runs.
func (s *PlanService) History(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if s.deps.Repo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.deps.Repo.ListPlanRuns(ctx, limit)
}

// Suggestions returns the archived orders of a run.
func (s *PlanService) Suggestions(ctx context.Context, runID int64) ([]*domain.OrderSuggestion, error) {
	if s.deps.Repo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.deps.Repo.GetSuggestions(ctx, runID)
}

func newPlanRun(req PlanRequest, res *PlanResult) *domain.PlanRun {
	gaps := make([]string, len(req.Options.Gaps))
	for i, g := range req.Options.Gaps {
		gaps[i] = strconv.Itoa(g)
	}
	return &domain.PlanRun{
		Workbook:   filepath.Base(req.WorkbookPath),
		WindowDays: req.Options.WindowDays,
		Platforms:  req.Options.Platforms,
		EveryDay:   req.Options.EveryDay,
		Gaps:       strings.Join(gaps, ","),
		LeadTime:   res.LeadTime,
		Orders:     res.Summary.Orders,
		TotalQty:   int64(res.Summary.TotalQuantity),
		OutputPath: res.OutputXLSX,
		CreatedAt:  res.Report.GeneratedAt,
	}
}

func toSuggestions(r *planner.Report) []*domain.OrderSuggestion {
	var out []*domain.OrderSuggestion
	for _, p := range r.Platforms {
		for _, o := range p.Orders {
			out = append(out, &domain.OrderSuggestion{
				Platform:     p.Name,
				PlatformIdx:  p.Index,
				DeliveryDate: o.DeliveryDate,
				ProductCode:  o.ProductCode,
				Quantity:     o.Quantity,
			})
		}
	}
	return out
}
