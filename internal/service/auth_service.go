package service

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/model"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"companyName"`
}

type AuthService struct {
	UserRepo    *repository.UserRepository
	CompanyRepo *repository.CompanyRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, companyRepo *repository.CompanyRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		CompanyRepo: companyRepo,
		Cfg:         cfg,
	}
}

// Register creates the account, and its company when a name is given.
func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	exists, err := s.UserRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      model.Member,
		LastLogin: time.Now(),
	}
	if req.CompanyName != "" {
		company := &model.Company{Name: req.CompanyName}
		if err := s.CompanyRepo.Create(company); err != nil {
			return nil, err
		}
		user.CompanyID = &company.ID
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errors.New("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.Expiration)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
