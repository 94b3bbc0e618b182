package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/shahana-04/employee/internal/platform/db"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrAuthFailed    = errors.New("authentication failed")
)

const tokenTTL = 24 * time.Hour

type Service struct {
	store  AccountStore
	secret []byte
	now    func() time.Time
	newID  func() string
}

func NewService(dbtx db.DBTX, secret []byte) *Service {
	return &Service{
		store:  NewStore(dbtx),
		secret: secret,
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	EmployeeID string
	Department string
	Role       string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Account, error) {
	existing, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct := &Account{
		ID:           s.newID(),
		Name:         in.Name,
		Email:        in.Email,
		EmployeeID:   in.EmployeeID,
		Department:   in.Department,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.store.Create(ctx, acct); err != nil {
		// unique key (email / employee_id) が同時登録を弾いた場合
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return acct, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	acct, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if acct == nil {
		return "", nil, ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acct.ID,
		"role": acct.Role,
		"exp":  s.now().Add(tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, acct, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*Account, error) {
	acct, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrNotFound
	}
	return acct, nil
}
