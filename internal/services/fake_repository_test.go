package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests. Transactions
// are serialized on a mutex, which is enough to exercise the exclusive
// closure path; per-call data access takes its own lock so the settlement
// compare-and-set stays atomic.
type fakeRepository struct {
	mu   sync.Mutex
	txMu sync.Mutex

	problems       map[uint]*models.Problem
	subjects       map[uint]*models.Subject
	roles          map[uint]*models.Role
	thresholds     []*models.ScoreThreshold
	groups         map[uint]*models.Group
	participants   map[uint]*models.Participant
	records        map[uint]*models.GroupParticipantRecord
	bindings       map[uint]*models.RoleBinding
	answers        map[uint]*models.Answer
	violationTypes map[uint]*models.ViolationType
	violations     []*models.Violation

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		problems:       make(map[uint]*models.Problem),
		subjects:       make(map[uint]*models.Subject),
		roles:          make(map[uint]*models.Role),
		groups:         make(map[uint]*models.Group),
		participants:   make(map[uint]*models.Participant),
		records:        make(map[uint]*models.GroupParticipantRecord),
		bindings:       make(map[uint]*models.RoleBinding),
		answers:        make(map[uint]*models.Answer),
		violationTypes: make(map[uint]*models.ViolationType),
	}
}

func (f *fakeRepository) newID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) Problem() repositories.ProblemRepository         { return fakeProblemRepo{f} }
func (f *fakeRepository) Subject() repositories.SubjectRepository         { return fakeSubjectRepo{f} }
func (f *fakeRepository) Role() repositories.RoleRepository               { return fakeRoleRepo{f} }
func (f *fakeRepository) Threshold() repositories.ThresholdRepository     { return fakeThresholdRepo{f} }
func (f *fakeRepository) Group() repositories.GroupRepository             { return fakeGroupRepo{f} }
func (f *fakeRepository) Participant() repositories.ParticipantRepository { return fakeParticipantRepo{f} }
func (f *fakeRepository) Record() repositories.RecordRepository           { return fakeRecordRepo{f} }
func (f *fakeRepository) Binding() repositories.BindingRepository         { return fakeBindingRepo{f} }
func (f *fakeRepository) Answer() repositories.AnswerRepository           { return fakeAnswerRepo{f} }
func (f *fakeRepository) Violation() repositories.ViolationRepository     { return fakeViolationRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeRepository) LockProblemGroup(ctx context.Context, problemID, groupID uint) error {
	// Exclusivity comes from the transaction mutex.
	return nil
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== SEED HELPERS =====

func (f *fakeRepository) seedRole(tag, name string, priority int, standardKit bool) *models.Role {
	role := &models.Role{Tag: tag, Name: name, Priority: priority, StandardKit: standardKit}
	_ = f.Role().Create(context.Background(), role)
	return role
}

func (f *fakeRepository) seedThreshold(role *models.Role, minScore, maxScore int) {
	_ = f.Threshold().Create(context.Background(), &models.ScoreThreshold{
		RoleID:   role.ID,
		MinScore: minScore,
		MaxScore: maxScore,
	})
}

func (f *fakeRepository) seedGroup(chatID string) *models.Group {
	group := &models.Group{ChatID: chatID, Title: "Group " + chatID, Kind: models.GroupKindParticipant}
	_ = f.Group().Create(context.Background(), group)
	return group
}

func (f *fakeRepository) seedAdminPage(chatID string, moderated *models.Group) *models.Group {
	page := &models.Group{
		ChatID:           chatID,
		Title:            "Admin " + chatID,
		Kind:             models.GroupKindAdminPage,
		ModeratedGroupID: &moderated.ID,
	}
	_ = f.Group().Create(context.Background(), page)
	return page
}

func (f *fakeRepository) seedProblem(value int, correct string) *models.Problem {
	return f.seedProblemAt(1, 1, value, correct)
}

func (f *fakeRepository) seedProblemAt(subjectID uint, index, value int, correct string) *models.Problem {
	problem := &models.Problem{
		SubjectID:     subjectID,
		Index:         index,
		Statement:     "test problem",
		CorrectOption: correct,
		Value:         value,
	}
	_ = f.Problem().Create(context.Background(), problem)
	return problem
}

func (f *fakeRepository) seedParticipant(chatUserID, firstName string, totalScore int) *models.Participant {
	participant := &models.Participant{
		ChatUserID: chatUserID,
		FirstName:  &firstName,
		TotalScore: totalScore,
	}
	_ = f.Participant().Create(context.Background(), participant)
	return participant
}

func (f *fakeRepository) seedRecord(participant *models.Participant, group *models.Group, score int) *models.GroupParticipantRecord {
	record := &models.GroupParticipantRecord{
		ParticipantID: participant.ID,
		GroupID:       group.ID,
		Score:         score,
	}
	_ = f.Record().Create(context.Background(), record)
	return record
}

func (f *fakeRepository) seedAnswer(problem *models.Problem, record *models.GroupParticipantRecord, option string, right bool) *models.Answer {
	answer := &models.Answer{
		ProblemID:   problem.ID,
		RecordID:    record.ID,
		Option:      &option,
		Right:       right,
		SubmittedAt: time.Now(),
	}
	_ = f.Answer().Create(context.Background(), answer)
	return answer
}

// ===== PROBLEM =====

type fakeProblemRepo struct{ f *fakeRepository }

func (r fakeProblemRepo) Create(ctx context.Context, problem *models.Problem) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	problem.ID = r.f.newID()
	cp := *problem
	r.f.problems[problem.ID] = &cp
	return nil
}

func (r fakeProblemRepo) GetByID(ctx context.Context, id uint) (*models.Problem, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p, ok := r.f.problems[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakeProblemRepo) GetBySubjectIndex(ctx context.Context, subjectID uint, index int) (*models.Problem, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.problems {
		if p.SubjectID == subjectID && p.Index == index {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeProblemRepo) List(ctx context.Context, filters repositories.ProblemFilters) ([]*models.Problem, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Problem
	for _, p := range r.f.problems {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// ===== SUBJECT =====

type fakeSubjectRepo struct{ f *fakeRepository }

func (r fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	subject.ID = r.f.newID()
	cp := *subject
	r.f.subjects[subject.ID] = &cp
	return nil
}

func (r fakeSubjectRepo) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	s, ok := r.f.subjects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r fakeSubjectRepo) CountProblems(ctx context.Context, subjectID uint) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var n int64
	for _, p := range r.f.problems {
		if p.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

// ===== ROLE =====

type fakeRoleRepo struct{ f *fakeRepository }

func (r fakeRoleRepo) Create(ctx context.Context, role *models.Role) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	role.ID = r.f.newID()
	cp := *role
	r.f.roles[role.ID] = &cp
	return nil
}

func (r fakeRoleRepo) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	role, ok := r.f.roles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *role
	return &cp, nil
}

func (r fakeRoleRepo) GetByTag(ctx context.Context, tag string) (*models.Role, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, role := range r.f.roles {
		if role.Tag == tag {
			cp := *role
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeRoleRepo) List(ctx context.Context) ([]*models.Role, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Role
	for _, role := range r.f.roles {
		cp := *role
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== THRESHOLD =====

type fakeThresholdRepo struct{ f *fakeRepository }

func (r fakeThresholdRepo) Create(ctx context.Context, threshold *models.ScoreThreshold) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	threshold.ID = r.f.newID()
	cp := *threshold
	r.f.thresholds = append(r.f.thresholds, &cp)
	return nil
}

func (r fakeThresholdRepo) ListStandard(ctx context.Context) ([]*models.ScoreThreshold, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.ScoreThreshold
	for _, t := range r.f.thresholds {
		role, ok := r.f.roles[t.RoleID]
		if !ok || !role.StandardKit {
			continue
		}
		cp := *t
		cp.Role = *role
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinScore < out[j].MinScore })
	return out, nil
}

// ===== GROUP =====

type fakeGroupRepo struct{ f *fakeRepository }

func (r fakeGroupRepo) Create(ctx context.Context, group *models.Group) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	group.ID = r.f.newID()
	cp := *group
	r.f.groups[group.ID] = &cp
	return nil
}

func (r fakeGroupRepo) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	g, ok := r.f.groups[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r fakeGroupRepo) GetByChatID(ctx context.Context, chatID string) (*models.Group, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, g := range r.f.groups {
		if g.ChatID == chatID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeGroupRepo) GetByHandle(ctx context.Context, handle string) (*models.Group, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, g := range r.f.groups {
		if g.Handle != nil && strings.EqualFold(*g.Handle, handle) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeGroupRepo) GetAdminPage(ctx context.Context, moderatedGroupID uint) (*models.Group, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, g := range r.f.groups {
		if g.Kind == models.GroupKindAdminPage && g.ModeratedGroupID != nil && *g.ModeratedGroupID == moderatedGroupID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeGroupRepo) Update(ctx context.Context, group *models.Group) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.groups[group.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *group
	r.f.groups[group.ID] = &cp
	return nil
}

// ===== PARTICIPANT =====

type fakeParticipantRepo struct{ f *fakeRepository }

func (r fakeParticipantRepo) Create(ctx context.Context, participant *models.Participant) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	participant.ID = r.f.newID()
	cp := *participant
	r.f.participants[participant.ID] = &cp
	return nil
}

func (r fakeParticipantRepo) GetByID(ctx context.Context, id uint) (*models.Participant, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p, ok := r.f.participants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakeParticipantRepo) GetByChatUserID(ctx context.Context, chatUserID string) (*models.Participant, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.participants {
		if p.ChatUserID == chatUserID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeParticipantRepo) Update(ctx context.Context, participant *models.Participant) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.participants[participant.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *participant
	r.f.participants[participant.ID] = &cp
	return nil
}

func (r fakeParticipantRepo) AddToTotalScore(ctx context.Context, id uint, points int) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p, ok := r.f.participants[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.TotalScore += points
	return nil
}

// ===== RECORD =====

type fakeRecordRepo struct{ f *fakeRepository }

func (r fakeRecordRepo) Create(ctx context.Context, record *models.GroupParticipantRecord) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	record.ID = r.f.newID()
	cp := *record
	cp.Participant = models.Participant{}
	r.f.records[record.ID] = &cp
	return nil
}

func (r fakeRecordRepo) get(id uint) (*models.GroupParticipantRecord, bool) {
	rec, ok := r.f.records[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	if p, ok := r.f.participants[rec.ParticipantID]; ok {
		cp.Participant = *p
	}
	return &cp, true
}

func (r fakeRecordRepo) GetByID(ctx context.Context, id uint) (*models.GroupParticipantRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	rec, ok := r.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return rec, nil
}

func (r fakeRecordRepo) GetByParticipantGroup(ctx context.Context, participantID, groupID uint) (*models.GroupParticipantRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, rec := range r.f.records {
		if rec.ParticipantID == participantID && rec.GroupID == groupID {
			out, _ := r.get(id)
			return out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeRecordRepo) ListByGroup(ctx context.Context, groupID uint) ([]*models.GroupParticipantRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.GroupParticipantRecord
	for id, rec := range r.f.records {
		if rec.GroupID == groupID {
			cp, _ := r.get(id)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeRecordRepo) AddScore(ctx context.Context, id uint, points int) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	rec, ok := r.f.records[id]
	if !ok {
		return repositories.ErrNotFound
	}
	rec.Score += points
	return nil
}

func (r fakeRecordRepo) ScoreSnapshot(ctx context.Context, groupID uint) ([]repositories.RecordScore, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []repositories.RecordScore
	for _, rec := range r.f.records {
		if rec.GroupID == groupID {
			out = append(out, repositories.RecordScore{
				RecordID:      rec.ID,
				ParticipantID: rec.ParticipantID,
				Score:         rec.Score,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out, nil
}

func (r fakeRecordRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.records[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.records, id)
	for bid, b := range r.f.bindings {
		if b.RecordID == id {
			delete(r.f.bindings, bid)
		}
	}
	kept := r.f.violations[:0]
	for _, v := range r.f.violations {
		if v.RecordID != id {
			kept = append(kept, v)
		}
	}
	r.f.violations = kept
	return nil
}

// ===== BINDING =====

type fakeBindingRepo struct{ f *fakeRepository }

func (r fakeBindingRepo) Create(ctx context.Context, binding *models.RoleBinding) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	role, ok := r.f.roles[binding.RoleID]
	if !ok {
		return repositories.ErrNotFound
	}
	// Guest is the absence of a binding, never a stored one.
	if role.IsGuest() {
		return nil
	}
	binding.ID = r.f.newID()
	cp := *binding
	cp.Role = models.Role{}
	cp.Record = models.GroupParticipantRecord{}
	r.f.bindings[binding.ID] = &cp
	return nil
}

func (r fakeBindingRepo) ListByRecord(ctx context.Context, recordID uint) ([]*models.RoleBinding, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.RoleBinding
	for _, b := range r.f.bindings {
		if b.RecordID != recordID {
			continue
		}
		cp := *b
		if role, ok := r.f.roles[b.RoleID]; ok {
			cp.Role = *role
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeBindingRepo) UpdateRole(ctx context.Context, bindingID, roleID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	b, ok := r.f.bindings[bindingID]
	if !ok {
		return repositories.ErrNotFound
	}
	b.RoleID = roleID
	return nil
}

func (r fakeBindingRepo) Delete(ctx context.Context, bindingID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.bindings[bindingID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.bindings, bindingID)
	return nil
}

// ===== ANSWER =====

type fakeAnswerRepo struct{ f *fakeRepository }

func (r fakeAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	answer.ID = r.f.newID()
	cp := *answer
	cp.Problem = models.Problem{}
	cp.Record = models.GroupParticipantRecord{}
	r.f.answers[answer.ID] = &cp
	return nil
}

func (r fakeAnswerRepo) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.answers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r fakeAnswerRepo) withDetails(a *models.Answer) *models.Answer {
	cp := *a
	if p, ok := r.f.problems[a.ProblemID]; ok {
		cp.Problem = *p
	}
	if rec, ok := r.f.records[a.RecordID]; ok {
		cp.Record = *rec
		if participant, ok := r.f.participants[rec.ParticipantID]; ok {
			cp.Record.Participant = *participant
		}
	}
	return &cp
}

func (r fakeAnswerRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Answer, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.answers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withDetails(a), nil
}

func (r fakeAnswerRepo) ListUnprocessed(ctx context.Context, problemID, groupID uint) ([]*models.Answer, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Answer
	for _, a := range r.f.answers {
		if a.Processed || a.ProblemID != problemID {
			continue
		}
		rec, ok := r.f.records[a.RecordID]
		if !ok || rec.GroupID != groupID {
			continue
		}
		out = append(out, r.withDetails(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeAnswerRepo) MarkProcessed(ctx context.Context, id uint) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	a, ok := r.f.answers[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if a.Processed {
		return false, nil
	}
	a.Processed = true
	return true, nil
}

func (r fakeAnswerRepo) CountProcessed(ctx context.Context, problemID, groupID uint) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var n int64
	for _, a := range r.f.answers {
		if !a.Processed || a.ProblemID != problemID {
			continue
		}
		rec, ok := r.f.records[a.RecordID]
		if ok && rec.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (r fakeAnswerRepo) CountByRecord(ctx context.Context, recordID uint) (repositories.AnswerCounts, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var counts repositories.AnswerCounts
	for _, a := range r.f.answers {
		if a.RecordID != recordID {
			continue
		}
		counts.Total++
		if a.Right {
			counts.Right++
		}
	}
	return counts, nil
}

// ===== VIOLATION =====

type fakeViolationRepo struct{ f *fakeRepository }

func (r fakeViolationRepo) Create(ctx context.Context, violation *models.Violation) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	violation.ID = r.f.newID()
	cp := *violation
	cp.Record = models.GroupParticipantRecord{}
	cp.Type = models.ViolationType{}
	r.f.violations = append(r.f.violations, &cp)
	return nil
}

func (r fakeViolationRepo) ListByRecord(ctx context.Context, recordID uint, filters repositories.ViolationFilters) ([]*models.Violation, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Violation
	for _, v := range r.f.violations {
		if v.RecordID != recordID {
			continue
		}
		if filters.TypeTag != nil {
			vt, ok := r.f.violationTypes[v.TypeID]
			if !ok || vt.Tag != *filters.TypeTag {
				continue
			}
		}
		cp := *v
		if vt, ok := r.f.violationTypes[v.TypeID]; ok {
			cp.Type = *vt
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	total := int64(len(out))
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, total, nil
}

func (r fakeViolationRepo) CreateType(ctx context.Context, violationType *models.ViolationType) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	violationType.ID = r.f.newID()
	cp := *violationType
	r.f.violationTypes[violationType.ID] = &cp
	return nil
}

func (r fakeViolationRepo) GetTypeByTag(ctx context.Context, tag string) (*models.ViolationType, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, vt := range r.f.violationTypes {
		if vt.Tag == tag {
			cp := *vt
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}
