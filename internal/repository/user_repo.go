package repository

import (
	"context"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	List(ctx context.Context, userType entity.UserType) ([]entity.User, error)
	MarkVerified(ctx context.Context, email string) error
	SetOtp(ctx context.Context, email, otp string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
}
