package category

import "context"

type Repository interface {
	Create(ctx context.Context, c Category) (int, error)
	List(ctx context.Context, userID int) ([]Category, error)
	Update(ctx context.Context, c Category) error
	// Delete detaches the category's passwords before removing it.
	Delete(ctx context.Context, userID, id int) error
}
