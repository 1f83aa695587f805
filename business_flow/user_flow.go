package businessflow

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"gorm.io/gorm"
)

// UserFlow handles operator account registration
type UserFlow interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, metadata *ClientMetadata) (*dto.UserDTO, error)
	GetUser(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

// UserFlowImpl implements the user registration business flow
type UserFlowImpl struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	personRepo repository.PersonRepository
	resolver   *EntityResolver
	clock      utils.Clock
	db         *gorm.DB
}

// NewUserFlow creates a new user flow instance
func NewUserFlow(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	personRepo repository.PersonRepository,
	resolver *EntityResolver,
	clock utils.Clock,
	db *gorm.DB,
) UserFlow {
	return &UserFlowImpl{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		personRepo: personRepo,
		resolver:   resolver,
		clock:      clock,
		db:         db,
	}
}

// CreateUser registers an operator. The person identity goes through the
// shared entity resolver, so registering a user for a known national id
// updates the existing person instead of duplicating it.
func (s *UserFlowImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest, metadata *ClientMetadata) (*dto.UserDTO, error) {
	var user *models.User
	var person *models.Person

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.userRepo.ByUsername(txCtx, req.Username)
		if err != nil {
			return NewInternalError("failed to check username", err)
		}
		if existing != nil {
			return NewConflictError("username already exists", ErrUsernameAlreadyExists)
		}

		role, err := s.roleRepo.ByName(txCtx, req.RoleName)
		if err != nil {
			return NewInternalError("failed to load role", err)
		}
		if role == nil {
			return NewNotFoundError("role not found", ErrRoleNotFound)
		}

		person, err = s.resolver.ResolvePerson(txCtx, req.Person)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return NewInternalError("failed to hash password", err)
		}

		user = &models.User{
			PersonID:     person.ID,
			RoleID:       role.ID,
			Username:     req.Username,
			PasswordHash: string(hash),
			CreatedAt:    s.clock.Now(),
		}
		if err := s.userRepo.Save(txCtx, user); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("username was registered concurrently", ErrUsernameAlreadyExists)
			}
			return NewInternalError("failed to create user", err)
		}

		user.Role = role
		return nil
	})

	if err != nil {
		return nil, err
	}

	phones, err := s.resolver.ActivePhones(ctx, models.OwnerTypePerson, person.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role.Name,
		Person:   ToPersonDTO(*person, phones),
	}, nil
}

// GetUser returns one operator account by id
func (s *UserFlowImpl) GetUser(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil || user.IsDeleted {
		return nil, NewNotFoundError("user not found", ErrUserNotFound)
	}

	person, err := s.personRepo.ByID(ctx, user.PersonID)
	if err != nil {
		return nil, NewInternalError("failed to load person", err)
	}
	if person == nil {
		return nil, NewNotFoundError("person not found", ErrPersonNotFound)
	}

	role, err := s.roleRepo.ByID(ctx, user.RoleID)
	if err != nil {
		return nil, NewInternalError("failed to load role", err)
	}

	phones, err := s.resolver.ActivePhones(ctx, models.OwnerTypePerson, person.ID)
	if err != nil {
		return nil, err
	}

	d := &dto.UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Person:   ToPersonDTO(*person, phones),
	}
	if role != nil {
		d.Role = role.Name
	}

	return d, nil
}
