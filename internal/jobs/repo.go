package jobs

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("job not found")

// ConnGate bounds concurrent database access. Satisfied by *db.Limiter; a nil
// gate means unbounded.
type ConnGate interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type Repo struct {
	DB   *gorm.DB
	Gate ConnGate
}

func (r *Repo) Create(ctx context.Context, j *Job) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return r.DB.WithContext(ctx).Create(j).Error
}

// List returns every posting, newest first. There is no pagination.
func (r *Repo) List(ctx context.Context) ([]Job, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var rows []Job
	if err := r.DB.WithContext(ctx).Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) Get(ctx context.Context, id uint64) (*Job, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var j Job
	if err := r.DB.WithContext(ctx).First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Delete removes a posting by id. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id uint64) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return r.DB.WithContext(ctx).Delete(&Job{}, id).Error
}

func (r *Repo) acquire(ctx context.Context) (func(), error) {
	if r.Gate == nil {
		return func() {}, nil
	}
	return r.Gate.Acquire(ctx)
}
