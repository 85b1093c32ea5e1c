package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeAdmin    UserType = "admin"
	UserTypeSeller   UserType = "seller"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Type       UserType           `bson:"type" json:"type"`
	IsVerified bool               `bson:"is_verified" json:"isVerified"`
	Otp        string             `bson:"otp,omitempty" json:"-"`
	OtpExpiry  *time.Time         `bson:"otp_expiry,omitempty" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the projection returned by login and profile endpoints. The
// password hash and OTP never leave the service layer.
type PublicUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Type  UserType `json:"type"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Type:  u.Type,
	}
}
