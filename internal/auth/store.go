package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// ConnGate bounds concurrent database access. Satisfied by *db.Limiter; a nil
// gate means unbounded.
type ConnGate interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Store is the gorm-backed persistence for users and refresh tokens.
type Store struct {
	DB   *gorm.DB
	Gate ConnGate
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return s.DB.WithContext(ctx).Create(u).Error
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var u User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id uint64) (*User, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var u User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) SaveRefresh(ctx context.Context, row *RefreshToken) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return s.DB.WithContext(ctx).Create(row).Error
}

// RefreshRow looks up a refresh token by exact token string and claimed user
// id. A signature alone is not enough; the row must exist.
func (s *Store) RefreshRow(ctx context.Context, token string, userID uint64) (*RefreshToken, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var row RefreshToken
	if err := s.DB.WithContext(ctx).Where("token = ? AND user_id = ?", token, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *Store) DeleteRefresh(ctx context.Context, token string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return s.DB.WithContext(ctx).Where("token = ?", token).Delete(&RefreshToken{}).Error
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	if s.Gate == nil {
		return func() {}, nil
	}
	return s.Gate.Acquire(ctx)
}
