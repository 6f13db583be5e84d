package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) (int64, error)
	Update(ctx context.Context, p *Profile) error
	GetByName(ctx context.Context, name string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Delete(ctx context.Context, name string) error
}
