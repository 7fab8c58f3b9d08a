package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/maplepath/api/internal/auth"
	"github.com/maplepath/api/internal/models"
	pgrepo "github.com/maplepath/api/internal/repositories/postgres"
	"github.com/maplepath/api/internal/render"
	"github.com/maplepath/api/internal/utils"
	"gorm.io/datatypes"
)

// memDB backs the CV and history fakes so Complete can insert both sides.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	cvs     map[int64]*models.UserCV
	history map[int64]*models.CVGenerationHistory

	completeErr error
	markErr     error
	clock       time.Time
}

func newMemDB() *memDB {
	return &memDB{
		cvs:     map[int64]*models.UserCV{},
		history: map[int64]*models.CVGenerationHistory{},
		clock:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// ---- CVRepository

type fakeCVRepo struct{ db *memDB }

func (r fakeCVRepo) ListByUser(_ context.Context, userID int64) ([]models.UserCV, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.UserCV
	for _, cv := range r.db.cvs {
		if cv.UserID == userID {
			out = append(out, *cv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeCVRepo) getOwned(id, userID int64) (*models.UserCV, error) {
	cv, ok := r.db.cvs[id]
	if !ok || cv.UserID != userID {
		return nil, utils.ErrNotFound
	}
	return cv, nil
}

func (r fakeCVRepo) GetOwned(_ context.Context, id, userID int64) (*models.UserCV, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cv, err := r.getOwned(id, userID)
	if err != nil {
		return nil, err
	}
	cp := *cv
	return &cp, nil
}

func (r fakeCVRepo) DeleteOwned(_ context.Context, id, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, err := r.getOwned(id, userID); err != nil {
		return err
	}
	delete(r.db.cvs, id)
	return nil
}

func (r fakeCVRepo) ToggleFavorite(ctx context.Context, id, userID int64) (*models.UserCV, error) {
	r.db.mu.Lock()
	cv, err := r.getOwned(id, userID)
	if err != nil {
		r.db.mu.Unlock()
		return nil, err
	}
	cv.IsFavorite = !cv.IsFavorite
	r.db.mu.Unlock()
	return r.GetOwned(ctx, id, userID)
}

func (r fakeCVRepo) UpdateOwned(ctx context.Context, id, userID int64, fields map[string]any) (*models.UserCV, error) {
	r.db.mu.Lock()
	cv, err := r.getOwned(id, userID)
	if err != nil {
		r.db.mu.Unlock()
		return nil, err
	}
	for k, v := range fields {
		switch k {
		case "title":
			cv.Title = v.(string)
		case "summary":
			cv.Summary = v.(string)
		case "is_favorite":
			cv.IsFavorite = v.(bool)
		case "skills":
			cv.Skills = v.(pq.StringArray)
		}
	}
	if len(fields) > 0 {
		cv.UpdatedAt = r.db.tick()
	}
	r.db.mu.Unlock()
	return r.GetOwned(ctx, id, userID)
}

func (r fakeCVRepo) SetPDFURL(_ context.Context, id, userID int64, url string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cv, err := r.getOwned(id, userID)
	if err != nil {
		return err
	}
	cv.PDFURL = &url
	return nil
}

// ---- HistoryRepository

type fakeHistoryRepo struct{ db *memDB }

func (r fakeHistoryRepo) CreatePending(_ context.Context, h *models.CVGenerationHistory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	h.ID = r.db.id()
	h.Status = models.GenerationPending
	h.CreatedAt = r.db.tick()
	cp := *h
	r.db.history[h.ID] = &cp
	return nil
}

func (r fakeHistoryRepo) Complete(_ context.Context, historyID int64, cv *models.UserCV, content datatypes.JSON, tokensUsed *int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.completeErr != nil {
		return r.db.completeErr
	}
	h, ok := r.db.history[historyID]
	if !ok || h.Status != models.GenerationPending {
		return pgrepo.ErrNotPending
	}
	cv.ID = r.db.id()
	cv.CreatedAt = r.db.tick()
	cv.UpdatedAt = cv.CreatedAt
	cp := *cv
	r.db.cvs[cv.ID] = &cp

	h.Status = models.GenerationCompleted
	h.CVID = &cp.ID
	h.GeneratedContent = content
	h.TokensUsed = tokensUsed
	return nil
}

func (r fakeHistoryRepo) MarkFailed(_ context.Context, historyID int64, message string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.markErr != nil {
		return r.db.markErr
	}
	h, ok := r.db.history[historyID]
	if !ok || h.Status != models.GenerationPending {
		return pgrepo.ErrNotPending
	}
	h.Status = models.GenerationFailed
	h.ErrorMessage = &message
	return nil
}

func (r fakeHistoryRepo) ListByCV(_ context.Context, cvID, userID int64) ([]models.CVGenerationHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.CVGenerationHistory
	for _, h := range r.db.history {
		if h.CVID != nil && *h.CVID == cvID && h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

// ---- IndustryRepository

type fakeIndustryRepo struct {
	mu        sync.Mutex
	rows      map[int64]*models.Industry
	listCalls int
	err       error
}

func newFakeIndustryRepo(rows ...models.Industry) *fakeIndustryRepo {
	r := &fakeIndustryRepo{rows: map[int64]*models.Industry{}}
	for i := range rows {
		row := rows[i]
		r.rows[row.ID] = &row
	}
	return r
}

func (r *fakeIndustryRepo) ListActive(context.Context) ([]models.Industry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Industry
	for _, row := range r.rows {
		if row.IsActive {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeIndustryRepo) GetByID(_ context.Context, id int64) (*models.Industry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeIndustryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeIndustryRepo) Create(_ context.Context, in *models.Industry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	in.ID = int64(len(r.rows) + 100)
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakeIndustryRepo) UpsertByName(ctx context.Context, in *models.Industry) error {
	return r.Create(ctx, in)
}

// ---- TraceRepository

type fakeTraceRepo struct {
	mu     sync.Mutex
	traces []models.GenerationTrace
	err    error
}

func (r *fakeTraceRepo) Insert(_ context.Context, t *models.GenerationTrace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.traces = append(r.traces, *t)
	return nil
}

func (r *fakeTraceRepo) GetByHistoryID(_ context.Context, historyID int64) (*models.GenerationTrace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.traces {
		if r.traces[i].HistoryID == historyID {
			return &r.traces[i], nil
		}
	}
	return nil, utils.ErrNotFound
}

// ---- render / storage

type fakeRenderer struct {
	formats []string
	err     error
}

func (r *fakeRenderer) Render(_ context.Context, doc render.Document, f render.Format) ([]byte, error) {
	r.formats = append(r.formats, f.Name)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake " + doc.Name), nil
}

type fakeUploader struct {
	objects map[string][]byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[objectName] = b
	return "https://storage.googleapis.com/test-bucket/" + objectName, nil
}

// ---- generator that panics

type panickingGenerator struct{}

func (panickingGenerator) Generate(context.Context, GenerationInput) *GenerationResult {
	panic("boom")
}

// ---- auth

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[int64]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == u.Email {
			return utils.ErrConflict
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if match(row) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "full_name":
			u.FullName = v.(string)
		case "phone_number":
			s := v.(string)
			u.PhoneNumber = &s
		case "profile_picture_url":
			s := v.(string)
			u.ProfilePictureURL = &s
		}
	}
	return nil
}

func (r *fakeUserRepo) LinkFirebase(_ context.Context, id int64, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.FirebaseUID = &uid
	u.IsVerified = true
	return nil
}

type fakeVerifier struct {
	id  *auth.Identity
	err error
}

func (v fakeVerifier) Verify(context.Context, string) (*auth.Identity, error) {
	return v.id, v.err
}

// ---- settle

type fakeRegionRepo struct {
	nextID int64
	rows   map[int64]*models.SettleRegion
}

func (r *fakeRegionRepo) Create(_ context.Context, in *models.SettleRegion) error {
	if r.rows == nil {
		r.rows = map[int64]*models.SettleRegion{}
	}
	r.nextID++
	in.ID = r.nextID
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakeRegionRepo) List(_ context.Context, offset, limit int) ([]models.SettleRegion, error) {
	var out []models.SettleRegion
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRegionRepo) GetByID(_ context.Context, id int64) (*models.SettleRegion, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeRegionRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, row := range r.rows {
		if row.RegionName == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegionRepo) Save(_ context.Context, in *models.SettleRegion) error {
	if _, ok := r.rows[in.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakeRegionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakePurposeRepo struct {
	nextID int64
	rows   map[int64]*models.SettlePurpose
}

func (r *fakePurposeRepo) Create(_ context.Context, in *models.SettlePurpose) error {
	if r.rows == nil {
		r.rows = map[int64]*models.SettlePurpose{}
	}
	r.nextID++
	in.ID = r.nextID
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakePurposeRepo) List(context.Context, int, int) ([]models.SettlePurpose, error) {
	var out []models.SettlePurpose
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakePurposeRepo) ListByRegion(_ context.Context, regionID int64) ([]models.SettlePurpose, error) {
	var out []models.SettlePurpose
	for _, row := range r.rows {
		if row.RegionID == regionID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakePurposeRepo) GetByID(_ context.Context, id int64) (*models.SettlePurpose, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakePurposeRepo) Save(_ context.Context, in *models.SettlePurpose) error {
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakePurposeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeUserPurposeRepo struct {
	nextID int64
	rows   map[int64]*models.UserSettlePurpose
}

func (r *fakeUserPurposeRepo) Create(_ context.Context, in *models.UserSettlePurpose) error {
	if r.rows == nil {
		r.rows = map[int64]*models.UserSettlePurpose{}
	}
	r.nextID++
	in.ID = r.nextID
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakeUserPurposeRepo) ListByUser(_ context.Context, userID int64) ([]models.UserSettlePurpose, error) {
	var out []models.UserSettlePurpose
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeUserPurposeRepo) GetByID(_ context.Context, id int64) (*models.UserSettlePurpose, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeUserPurposeRepo) Exists(_ context.Context, userID, purposeID int64) (bool, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.SettlePurposeID == purposeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserPurposeRepo) Save(_ context.Context, in *models.UserSettlePurpose) error {
	cp := *in
	r.rows[in.ID] = &cp
	return nil
}

func (r *fakeUserPurposeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
