package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	repo "github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-management/pkg/mailer/templates"
)

const (
	msgInvalidUserID  = "Invalid user id."
	msgDuplicateEmail = "User with the same email already exists."
)

// UserService implements the user domain operations. It holds no mutable
// state; the repository is the only shared resource.
type UserService struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Logger logrus.FieldLogger

	// Optional collaborators; nil disables them.
	Index    UserIndexer
	Emails   EmailPublisher
	Branding mailtpl.Branding
}

func NewUserService(r repo.UserRepository, hasher PasswordHasher, logger logrus.FieldLogger) *UserService {
	return &UserService{
		Repo:   r,
		Hasher: hasher,
		Logger: helpers.OrDiscard(logger),
	}
}

// ListUsers filters every stored user by name, age, email and role, in that
// order, then returns the requested page. Callers pass page >= 1 and
// pageSize >= 1.
func (s *UserService) ListUsers(ctx context.Context, f UserFilter, page, pageSize int) (UserPage, error) {
	users, err := s.Repo.FindAll(ctx)
	if err != nil {
		return UserPage{}, err
	}

	matched := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if f.matches(u) {
			matched = append(matched, u)
		}
	}

	out := UserPage{
		Items:      []entity.UserView{},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(matched),
	}
	if pageSize < 1 || page < 1 {
		return out, nil
	}
	out.TotalPages = (len(matched) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return out, nil
	}
	end := min(start+pageSize, len(matched))
	for _, u := range matched[start:end] {
		out.Items = append(out.Items, u.View())
	}
	return out, nil
}

func (f UserFilter) matches(u *entity.User) bool {
	if f.Name != nil && *f.Name != "" && !containsFold(u.Name, *f.Name) {
		return false
	}
	if f.Age != nil && u.Age != *f.Age {
		return false
	}
	if f.Email != nil && *f.Email != "" && !containsFold(u.Email, *f.Email) {
		return false
	}
	if f.Role != nil && !u.HasRole(*f.Role) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// GetByID loads a user. Ids below 1 are rejected before the store is queried.
func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if id < 1 {
		return nil, apperror.BadRequest(msgInvalidUserID)
	}
	u, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(fmt.Sprintf("No user found with id %d.", id))
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail looks the email up exactly as stored, without case folding.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(fmt.Sprintf("No user found with email %s.", email))
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Register validates in, rejects an email already taken in any letter case,
// then stores the user with a hashed password and a lower-cased email.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*entity.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         in.Name,
		Age:          in.Age,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Roles:        parseRoles(in.Roles),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeError(err)
	}

	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	s.index(ctx, u)
	s.sendWelcome(ctx, u)
	return u, nil
}

// Update replaces name, email, password, age and the whole role set.
// The password is always re-hashed.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	if id < 1 {
		return nil, apperror.BadRequest(msgInvalidUserID)
	}
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(in.Email, u.Email) {
		if err := s.ensureEmailFree(ctx, in.Email); err != nil {
			return nil, err
		}
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.Name = in.Name
	u.Email = strings.ToLower(in.Email)
	u.PasswordHash = hash
	u.Age = in.Age
	u.Roles = parseRoles(in.Roles)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err)
	}

	helpers.LogInfo(s.Logger, "user updated", logrus.Fields{"user_id": u.ID})
	s.index(ctx, u)
	return u, nil
}

// AddRole grants role to the user. Granting a role the user already holds
// is rejected and leaves the role set unchanged.
func (s *UserService) AddRole(ctx context.Context, id int64, role entity.Role) (*entity.User, error) {
	if id < 1 {
		return nil, apperror.BadRequest(msgInvalidUserID)
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.HasRole(role) {
		return nil, apperror.BadRequest(fmt.Sprintf("User already has the %s role.", role))
	}

	u.Roles = append(u.Roles, role)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err)
	}

	helpers.LogInfo(s.Logger, "role added", logrus.Fields{"user_id": u.ID, "role": role})
	s.index(ctx, u)
	return u, nil
}

// Delete removes the user. Deleting an id that no longer exists is NotFound.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return apperror.BadRequest(msgInvalidUserID)
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound(fmt.Sprintf("No user found with id %d.", id))
		}
		return err
	}

	helpers.LogInfo(s.Logger, "user deleted", logrus.Fields{"user_id": id})
	if s.Index != nil {
		if err := s.Index.DeleteUser(ctx, id); err != nil {
			helpers.LogError(s.Logger, "search index delete failed", err, logrus.Fields{"user_id": id})
		}
	}
	return nil
}

// Search queries the user index. Without an index it returns no results.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]entity.UserView, error) {
	if s.Index == nil {
		return []entity.UserView{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.SearchUsers(ctx, q, size)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.Repo.FindByEmailFold(ctx, email)
	switch {
	case err == nil:
		return apperror.BadRequest(msgDuplicateEmail)
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return err
	}
}

// storeError maps the store's unique email violation onto the same failure
// the pre-check reports.
func storeError(err error) error {
	if errors.Is(err, repo.ErrDuplicateEmail) {
		return apperror.BadRequest(msgDuplicateEmail)
	}
	return err
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u.View()); err != nil {
		helpers.LogError(s.Logger, "search index update failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (s *UserService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Emails == nil {
		return
	}
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.String())
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Branding, u.Name, u.Email, mailtpl.WithRoles(roles...)),
	}
	if err := s.Emails.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "welcome email publish failed", err, logrus.Fields{"user_id": u.ID})
	}
}
