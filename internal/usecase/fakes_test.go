package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
	"civicport/internal/domain/service"
	"civicport/pkg/errors"
	"civicport/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("test")
}

type fakeComplaintRepo struct {
	complaints  []*entity.Complaint
	createErr   error
	createCalls int
	clock       time.Time
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, complaint *entity.Complaint) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.clock = r.clock.Add(time.Minute)
	complaint.ID = fmt.Sprintf("c-%d", len(r.complaints)+1)
	complaint.CreatedAt = r.clock
	complaint.UpdatedAt = r.clock
	r.complaints = append(r.complaints, complaint)
	return nil
}

func (r *fakeComplaintRepo) find(id string) *entity.Complaint {
	for _, c := range r.complaints {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	stored := r.find(id)
	if stored == nil {
		return nil, errors.NotFound("Complaint", nil)
	}
	copied := *stored
	copied.History = append([]entity.StatusChange(nil), stored.History...)
	return &copied, nil
}

func (r *fakeComplaintRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	matched := make([]*entity.Complaint, 0)
	for _, c := range r.complaints {
		if c.UserID == userID {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *fakeComplaintRepo) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	all := append([]*entity.Complaint(nil), r.complaints...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, int64(len(all)), nil
}

func (r *fakeComplaintRepo) UpdateStatus(ctx context.Context, id string, change entity.StatusChange) error {
	c := r.find(id)
	if c == nil {
		return errors.NotFound("Complaint", nil)
	}
	c.Status = change.NewStatus
	c.History = append(c.History, change)
	c.UpdatedAt = change.CreatedAt
	return nil
}

func (r *fakeComplaintRepo) Assign(ctx context.Context, id, staffID string) error {
	c := r.find(id)
	if c == nil {
		return errors.NotFound("Complaint", nil)
	}
	c.AssignedTo = staffID
	return nil
}

func (r *fakeComplaintRepo) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	counts := &repository.StatusCounts{}
	for _, c := range r.complaints {
		counts.Total++
		switch c.Status {
		case entity.StatusPending:
			counts.Pending++
		case entity.StatusInProgress:
			counts.InProgress++
		case entity.StatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	u.Role = role
	return nil
}

type fakeMediaRepo struct {
	files []*entity.MediaFile
}

func (r *fakeMediaRepo) Create(ctx context.Context, file *entity.MediaFile) error {
	r.files = append(r.files, file)
	return nil
}

func (r *fakeMediaRepo) ListByComplaint(ctx context.Context, complaintID string) ([]*entity.MediaFile, error) {
	return nil, nil
}

type fakeAuthClient struct {
	knownUsers map[string]bool
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return "uid-" + email, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (f *fakeAuthClient) GetUser(ctx context.Context, uid string) error {
	if f.knownUsers[uid] {
		return nil
	}
	return fmt.Errorf("user %s not found", uid)
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	return "token-" + email, nil
}

// fakeStorage records uploads and can be told to fail on the nth call.
type fakeStorage struct {
	uploads   []string
	failAt    int // 1-based upload index that fails; 0 means never
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, contentType, objectName string) (*service.UploadResult, error) {
	if f.failAt > 0 && len(f.uploads)+1 == f.failAt {
		if f.uploadErr != nil {
			return nil, f.uploadErr
		}
		return nil, fmt.Errorf("storage unavailable")
	}
	data, _ := io.ReadAll(file)
	f.uploads = append(f.uploads, objectName)
	return &service.UploadResult{
		URL:        "https://storage.googleapis.com/test-bucket/" + objectName,
		ObjectName: objectName,
		Size:       int64(len(data)),
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, objectName string) error {
	return nil
}

func (f *fakeStorage) Close() error {
	return nil
}
