package services

import (
	"context"
	"time"

	"github.com/linguaflow/backend/internal/models"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user       *models.User
	users      []models.User
	created    *models.User
	byAuth0Err error
	byIDErr    error
	byEmailErr error
	createErr  error
	updateErr  error
	deleteErr  error
	listErr    error
	lastUpdate *models.UpdateUserRequest
	lastPage   int
	lastCount  int
	deletedID  string
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "new-user-id"
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	if m.byAuth0Err != nil {
		return nil, m.byAuth0Err
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	return m.user, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, req *models.UpdateUserRequest) error {
	m.lastUpdate = req
	return m.updateErr
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockUserRepository) List(ctx context.Context, filter models.UserFilter, page, count int) ([]models.User, error) {
	m.lastPage = page
	m.lastCount = count
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

// mockTemplateRepository is a mock implementation of TemplateRepository
type mockTemplateRepository struct {
	template   *models.Template
	templates  []models.Template
	created    *models.Template
	exists     bool
	getErr     error
	existsErr  error
	createErr  error
	updateErr  error
	deleteErr  error
	listErr    error
	lastUpdate *models.UpdateTemplateRequest
	deletedID  string
}

func (m *mockTemplateRepository) Create(ctx context.Context, template *models.Template) error {
	if m.createErr != nil {
		return m.createErr
	}
	template.ID = "new-template-id"
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	m.created = template
	return nil
}

func (m *mockTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.template, nil
}

func (m *mockTemplateRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockTemplateRepository) Update(ctx context.Context, id string, req *models.UpdateTemplateRequest) error {
	m.lastUpdate = req
	return m.updateErr
}

func (m *mockTemplateRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockTemplateRepository) List(ctx context.Context, filter models.TemplateFilter, page, count int) ([]models.Template, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.templates, nil
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson        *models.Lesson
	lessons       []models.Lesson
	created       *models.Lesson
	slugTaken     bool
	orderTaken    bool
	templateInUse bool
	getErr        error
	existsErr     error
	createErr     error
	updateErr     error
	deleteErr     error
	listErr       error
	lastUpdate    *models.UpdateLessonRequest
	deletedID     string
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	lesson.ID = "new-lesson-id"
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	m.created = lesson
	return nil
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.slugTaken, nil
}

func (m *mockLessonRepository) ExistsByLevelOrder(ctx context.Context, level models.Level, order int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.orderTaken, nil
}

func (m *mockLessonRepository) ExistsByTemplateID(ctx context.Context, templateID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.templateInUse, nil
}

func (m *mockLessonRepository) Update(ctx context.Context, id string, req *models.UpdateLessonRequest) error {
	m.lastUpdate = req
	return m.updateErr
}

func (m *mockLessonRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockLessonRepository) List(ctx context.Context, filter models.LessonFilter, page, count int) ([]models.Lesson, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.lessons, nil
}

// mockProgressRepository is a mock implementation of UserProgressRepository
type mockProgressRepository struct {
	progress          *models.UserProgress
	records           []models.UserProgress
	created           *models.UserProgress
	userHasProgress   bool
	lessonHasProgress bool
	getErr            error
	existsErr         error
	createErr         error
	updateErr         error
	deleteErr         error
	listErr           error
	updatedCompleted  *bool
	updatedAt         *time.Time
	lastFilter        models.UserProgressFilter
	deletedID         string
}

func (m *mockProgressRepository) Create(ctx context.Context, progress *models.UserProgress) error {
	if m.createErr != nil {
		return m.createErr
	}
	progress.ID = "new-progress-id"
	now := time.Now().UTC()
	progress.CreatedAt = now
	progress.UpdatedAt = now
	m.created = progress
	return nil
}

func (m *mockProgressRepository) GetByID(ctx context.Context, id string) (*models.UserProgress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.progress, nil
}

func (m *mockProgressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.UserProgress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.progress, nil
}

func (m *mockProgressRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.userHasProgress, nil
}

func (m *mockProgressRepository) ExistsByLessonID(ctx context.Context, lessonID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.lessonHasProgress, nil
}

func (m *mockProgressRepository) Update(ctx context.Context, id string, completed bool, completedAt *time.Time) error {
	m.updatedCompleted = &completed
	m.updatedAt = completedAt
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.progress != nil {
		m.progress.Completed = completed
		m.progress.CompletedAt = completedAt
	}
	return nil
}

func (m *mockProgressRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockProgressRepository) List(ctx context.Context, filter models.UserProgressFilter, page, count int) ([]models.UserProgress, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}
