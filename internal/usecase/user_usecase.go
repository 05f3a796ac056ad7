package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type UserUsecase struct {
	userRepo  repo.UserRepository
	jwtSecret []byte
}

// DI
func NewUserUsecase(userRepo repo.UserRepository, jwtSecret string) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

type UserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"is_admin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type LoginOutput struct {
	User  string `json:"user"` // email
	Token string `json:"token"`
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	usr, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "the user with the given ID was not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *usr, nil
}

// Registerは会員登録。パスワードはbcryptでハッシュ化して保存する。
func (u *UserUsecase) Register(ctx context.Context, in UserInput) (model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if in.Password == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password required")
	}

	//email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	usr := model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		IsAdmin:      in.IsAdmin,
		Street:       in.Street,
		Apartment:    in.Apartment,
		Zip:          in.Zip,
		City:         in.City,
		Country:      in.Country,
	}
	if err := u.userRepo.Create(ctx, &usr); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "the user cannot be created")
	}
	return usr, nil
}

// Loginはemail+passwordを検証してJWTを発行する。
func (u *UserUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	usr, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if usr == nil {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "the user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "password is wrong")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(usr.ID, 10),
		"isAdmin": usr.IsAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{User: usr.Email, Token: signed}, nil
}

// Updateは全フィールド置き換え。passwordは指定があった時だけ再ハッシュ。
func (u *UserUsecase) Update(ctx context.Context, userID int64, in UserInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	existing, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "the user with the given ID was not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash := existing.PasswordHash
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		hash = string(h)
	}

	usr := model.User{
		ID:           userID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		IsAdmin:      in.IsAdmin,
		Street:       in.Street,
		Apartment:    in.Apartment,
		Zip:          in.Zip,
		City:         in.City,
		Country:      in.Country,
	}
	if err := u.userRepo.Update(ctx, &usr); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.User{}, NewHTTPError(http.StatusNotFound, "the user with the given ID was not found")
		}
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 0件は正常値
func (u *UserUsecase) Count(ctx context.Context) (int64, error) {
	total, err := u.userRepo.Count(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return total, nil
}
