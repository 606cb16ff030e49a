package usecases

import (
	"errors"

	"irrigation-server/entities"
	"irrigation-server/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUsernameTaken = errors.New("username already in use")
var ErrUnknownRole = errors.New("unknown role id")
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserInput is the create/update payload. Password is plain text on
// the wire and never stored; a blank password on update keeps the
// current hash.
type UserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	RoleID   uint   `json:"roleId" binding:"required"`
}

type UserUseCase struct {
	UserRepo repositories.UserRepository
}

func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{UserRepo: userRepo}
}

// Authenticate checks a username/password pair and returns the user.
func (uc *UserUseCase) Authenticate(username, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UserUseCase) GetAllUsers() ([]entities.User, error) {
	return uc.UserRepo.GetAll()
}

func (uc *UserUseCase) GetUser(id uint) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) CreateUser(input UserInput) (*entities.User, error) {
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	existing, err := uc.UserRepo.GetByUsername(input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	role, err := uc.UserRepo.RoleByID(input.RoleID)
	if err != nil {
		return nil, ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := uc.UserRepo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes username and role, and re-hashes the password
// only when a non-blank one was supplied.
func (uc *UserUseCase) UpdateUser(id uint, input UserInput) (*entities.User, error) {
	existing, err := uc.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Username != existing.Username {
		taken, err := uc.UserRepo.GetByUsername(input.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if taken != nil {
			return nil, ErrUsernameTaken
		}
	}

	role, err := uc.UserRepo.RoleByID(input.RoleID)
	if err != nil {
		return nil, ErrUnknownRole
	}

	existing.Username = input.Username
	existing.RoleID = role.ID
	existing.Role = *role
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}

	if err := uc.UserRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *UserUseCase) DeleteUser(id uint) error {
	if _, err := uc.GetUser(id); err != nil {
		return err
	}
	return uc.UserRepo.Delete(id)
}

func (uc *UserUseCase) GetRoles() ([]entities.Role, error) {
	return uc.UserRepo.Roles()
}
