package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rescue-service/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type userService struct {
	userRepository UserRepository
	jwtSecret      string
}

func NewUserService(repo UserRepository, jwtSecret string) UserService {
	return &userService{
		userRepository: repo,
		jwtSecret:      jwtSecret,
	}
}

func (s *userService) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {

	if req.Email == "" || req.Name == "" {
		return nil, errors.New("email and name are required")
	}

	if !ValidRole(req.Role) {
		return nil, fmt.Errorf("role must be %q or %q", RolePatient, RoleResponder)
	}

	u := &User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if err := s.userRepository.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.authResponse(u)
}

// SignIn looks the user up by email only; there is no password to
// verify in this design.
func (s *userService) SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error) {

	if req.Email == "" {
		return nil, errors.New("email is required")
	}

	u, err := s.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return s.authResponse(u)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*User, error) {

	if id == "" {
		return nil, errors.New("user id is required")
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepository.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*User, error) {

	if email == "" {
		return nil, errors.New("email is required")
	}

	u, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}

func (s *userService) authResponse(u *User) (*AuthResponse, error) {
	token, err := auth.MakeToken(u.ID.Hex(), u.Name, u.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}
