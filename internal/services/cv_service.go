package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/maplepath/api/internal/models"
	mongorepo "github.com/maplepath/api/internal/repositories/mongo"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/render"
	"github.com/maplepath/api/internal/storage"
	"github.com/maplepath/api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// GenerationSummary is the response to a successful generation.
type GenerationSummary struct {
	CVID             int64    `json:"cv_id"`
	OptimizedSummary string   `json:"optimized_summary"`
	OptimizedSkills  []string `json:"optimized_skills"`
	Tips             []string `json:"tips"`
	ATSScore         int      `json:"ats_score"`
	Suggestions      []string `json:"suggestions"`
}

// CVUpdate holds the editable fields of a stored CV. Nil means unchanged.
type CVUpdate struct {
	Title      *string   `json:"title"`
	Summary    *string   `json:"summary"`
	Skills     *[]string `json:"skills"`
	IsFavorite *bool     `json:"is_favorite"`
}

type ExportedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type CVService interface {
	Generate(ctx context.Context, userID int64, req *models.CVRequest) (*GenerationSummary, error)
	List(ctx context.Context, userID int64) ([]models.CVSummary, error)
	Get(ctx context.Context, userID, cvID int64) (*models.UserCV, error)
	Update(ctx context.Context, userID, cvID int64, in CVUpdate) (*models.UserCV, error)
	Delete(ctx context.Context, userID, cvID int64) error
	ToggleFavorite(ctx context.Context, userID, cvID int64) (*models.UserCV, error)
	// Export renders the CV. An empty format means the default layout.
	Export(ctx context.Context, userID, cvID int64, format string) (*ExportedFile, error)
	Publish(ctx context.Context, userID, cvID int64) (*models.UserCV, error)
	History(ctx context.Context, userID, cvID int64) ([]models.CVGenerationHistory, error)
}

// CVDeps wires a CVService. Uploader and Traces are optional.
type CVDeps struct {
	CVs        pgrepo.CVRepository
	History    pgrepo.HistoryRepository
	Industries pgrepo.IndustryRepository
	Generator  ResumeGenerator
	Renderer   render.Renderer
	Uploader   storage.Uploader
	Traces     mongorepo.TraceRepository
	Log        logrus.FieldLogger
}

type cvService struct {
	cvs        pgrepo.CVRepository
	history    pgrepo.HistoryRepository
	industries pgrepo.IndustryRepository
	generator  ResumeGenerator
	renderer   render.Renderer
	uploader   storage.Uploader
	traces     mongorepo.TraceRepository
	log        logrus.FieldLogger
}

func NewCVService(d CVDeps) CVService {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &cvService{
		cvs:        d.CVs,
		history:    d.History,
		industries: d.Industries,
		generator:  d.Generator,
		renderer:   d.Renderer,
		uploader:   d.Uploader,
		traces:     d.Traces,
		log:        log,
	}
}

func (s *cvService) Generate(ctx context.Context, userID int64, req *models.CVRequest) (*GenerationSummary, error) {
	const op = "CVService.Generate"

	if userID <= 0 {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if verr := validateCVRequest(req); verr != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, verr.Error(), verr)
	}

	industry, err := s.industries.GetByID(ctx, req.IndustryID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Industry not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load industry", err)
	}

	hist := &models.CVGenerationHistory{
		UserID:     userID,
		IndustryID: &industry.ID,
		Prompt:     fmt.Sprintf("Generate CV for %s in %s", req.JobTitle, industry.Name),
	}
	if err := s.history.CreatePending(ctx, hist); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record generation attempt", err)
	}

	// from here on the history row must reach a terminal state
	defer func() {
		if r := recover(); r != nil {
			s.markFailed(ctx, hist.ID, fmt.Sprintf("CV generation failed: %v", r))
			panic(r)
		}
	}()

	gen := s.generator.Generate(ctx, GenerationInput{
		IndustryName: industry.Name,
		IndustryTips: industry.Tips,
		Request:      req,
	})
	opt := gen.Optimization

	cv := buildCV(userID, industry, req, opt)

	payload, err := json.Marshal(opt)
	if err != nil {
		s.markFailed(ctx, hist.ID, "CV generation failed: "+err.Error())
		return nil, utils.E(utils.CodeInternal, op, "CV generation failed", err)
	}
	var tokens *int
	if gen.TokensUsed > 0 {
		t := gen.TokensUsed
		tokens = &t
	}

	if err := s.history.Complete(ctx, hist.ID, cv, datatypes.JSON(payload), tokens); err != nil {
		s.markFailed(ctx, hist.ID, "CV generation failed: "+err.Error())
		return nil, utils.E(utils.CodeInternal, op, "CV generation failed", err)
	}

	s.recordTrace(ctx, hist, gen)

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"cv_id":      cv.ID,
		"history_id": hist.ID,
		"source":     gen.Source,
		"ats_score":  opt.ATSScore,
	}).Info("cv generated")

	return &GenerationSummary{
		CVID:             cv.ID,
		OptimizedSummary: opt.OptimizedSummary,
		OptimizedSkills:  opt.OptimizedSkills,
		Tips:             opt.Tips,
		ATSScore:         opt.ATSScore,
		Suggestions:      opt.KeyAchievements,
	}, nil
}

// markFailed runs detached from the request so a cancelled caller still leaves
// a terminal history row.
func (s *cvService) markFailed(ctx context.Context, historyID int64, msg string) {
	if err := s.history.MarkFailed(context.WithoutCancel(ctx), historyID, msg); err != nil {
		s.log.WithError(err).WithField("history_id", historyID).Error("failed to mark generation history failed")
	}
}

func (s *cvService) recordTrace(ctx context.Context, hist *models.CVGenerationHistory, gen *GenerationResult) {
	if s.traces == nil {
		return
	}
	t := &models.GenerationTrace{
		HistoryID:  hist.ID,
		UserID:     hist.UserID,
		Provider:   gen.Provider,
		Source:     string(gen.Source),
		Prompt:     gen.Prompt,
		RawText:    gen.RawText,
		TokensUsed: gen.TokensUsed,
		LatencyMS:  gen.Latency.Milliseconds(),
	}
	if gen.Cause != nil {
		t.Cause = gen.Cause.Error()
	}
	if err := s.traces.Insert(context.WithoutCancel(ctx), t); err != nil {
		s.log.WithError(err).WithField("history_id", hist.ID).Warn("failed to store generation trace")
	}
}

func buildCV(userID int64, industry *models.Industry, req *models.CVRequest, opt models.Optimization) *models.UserCV {
	summary := opt.OptimizedSummary
	if summary == "" {
		summary = req.Summary
	}
	skills := opt.OptimizedSkills
	if len(skills) == 0 {
		skills = req.Skills
	}

	industryID := industry.ID
	return &models.UserCV{
		UserID:         userID,
		IndustryID:     &industryID,
		Title:          fmt.Sprintf("%s - %s", req.JobTitle, industry.Name),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Location:       req.Location,
		Summary:        summary,
		Experience:     nonNil(req.Experience),
		Education:      nonNil(req.Education),
		Skills:         pq.StringArray(nonNil(skills)),
		Certifications: nonNil(req.Certifications),
		Languages:      nonNil(req.Languages),
		Content: datatypes.NewJSONType(models.CVContent{
			OriginalInput:   *req,
			AIOptimizations: opt,
			Industry:        models.IndustryRef{ID: industry.ID, Name: industry.Name},
		}),
		FormatType: models.FormatCanadian,
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func (s *cvService) List(ctx context.Context, userID int64) ([]models.CVSummary, error) {
	const op = "CVService.List"

	rows, err := s.cvs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list CVs", err)
	}
	out := make([]models.CVSummary, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Summarize())
	}
	return out, nil
}

func (s *cvService) Get(ctx context.Context, userID, cvID int64) (*models.UserCV, error) {
	return s.getOwned(ctx, "CVService.Get", userID, cvID)
}

// getOwned answers "CV not found" both for missing rows and for rows owned by
// someone else.
func (s *cvService) getOwned(ctx context.Context, op string, userID, cvID int64) (*models.UserCV, error) {
	if cvID <= 0 {
		return nil, utils.E(utils.CodeNotFound, op, "CV not found", utils.ErrNotFound)
	}
	cv, err := s.cvs.GetOwned(ctx, cvID, userID)
	if err != nil {
		return nil, cvLookupErr(op, err)
	}
	return cv, nil
}

func cvLookupErr(op string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "CV not found", err)
	}
	return utils.E(utils.CodeInternal, op, "failed to load CV", err)
}

func (s *cvService) Update(ctx context.Context, userID, cvID int64, in CVUpdate) (*models.UserCV, error) {
	const op = "CVService.Update"

	fields := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "title cannot be empty", nil)
		}
		fields["title"] = t
	}
	if in.Summary != nil {
		fields["summary"] = *in.Summary
	}
	if in.Skills != nil {
		fields["skills"] = pq.StringArray(cleanList(*in.Skills))
	}
	if in.IsFavorite != nil {
		fields["is_favorite"] = *in.IsFavorite
	}

	cv, err := s.cvs.UpdateOwned(ctx, cvID, userID, fields)
	if err != nil {
		return nil, cvLookupErr(op, err)
	}
	return cv, nil
}

func (s *cvService) Delete(ctx context.Context, userID, cvID int64) error {
	const op = "CVService.Delete"

	if err := s.cvs.DeleteOwned(ctx, cvID, userID); err != nil {
		return cvLookupErr(op, err)
	}
	return nil
}

func (s *cvService) ToggleFavorite(ctx context.Context, userID, cvID int64) (*models.UserCV, error) {
	const op = "CVService.ToggleFavorite"

	cv, err := s.cvs.ToggleFavorite(ctx, cvID, userID)
	if err != nil {
		return nil, cvLookupErr(op, err)
	}
	return cv, nil
}

func (s *cvService) Export(ctx context.Context, userID, cvID int64, format string) (*ExportedFile, error) {
	const op = "CVService.Export"

	cv, err := s.getOwned(ctx, op, userID, cvID)
	if err != nil {
		return nil, err
	}

	f, _ := render.LookupFormat(format)
	data, err := s.renderer.Render(ctx, render.Build(cv), f)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.E(utils.CodeTimeout, op, "export cancelled", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to render CV", err)
	}

	// the requested name is kept even when it fell back to the default layout
	suffix := strings.TrimSpace(format)
	if suffix == "" {
		suffix = strconv.FormatInt(cv.ID, 10)
	}
	return &ExportedFile{
		FileName:    render.FileName(cv.FullName, suffix),
		ContentType: render.MediaTypePDF,
		Data:        data,
	}, nil
}

func (s *cvService) Publish(ctx context.Context, userID, cvID int64) (*models.UserCV, error) {
	const op = "CVService.Publish"

	if s.uploader == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "document storage is not configured", nil)
	}

	file, err := s.Export(ctx, userID, cvID, "")
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, storage.CVObjectName(userID, cvID), file.ContentType, bytes.NewReader(file.Data))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload document", err)
	}
	if err := s.cvs.SetPDFURL(ctx, cvID, userID, url); err != nil {
		return nil, cvLookupErr(op, err)
	}
	return s.getOwned(ctx, op, userID, cvID)
}

func (s *cvService) History(ctx context.Context, userID, cvID int64) ([]models.CVGenerationHistory, error) {
	const op = "CVService.History"

	if _, err := s.getOwned(ctx, op, userID, cvID); err != nil {
		return nil, err
	}
	rows, err := s.history.ListByCV(ctx, cvID, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list generation history", err)
	}
	return rows, nil
}
