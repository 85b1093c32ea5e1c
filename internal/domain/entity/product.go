package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryType string

const (
	CategoryOperatingSystem     CategoryType = "Operating System"
	CategoryApplicationSoftware CategoryType = "Application Software"
)

type PlatformType string

const (
	PlatformWindows PlatformType = "Windows"
	PlatformMac     PlatformType = "Mac"
	PlatformLinux   PlatformType = "Linux"
	PlatformAndroid PlatformType = "Android"
	PlatformIOS     PlatformType = "iOS"
)

type BaseType string

const (
	BaseComputer BaseType = "Computer"
	BaseMobile   BaseType = "Mobile"
)

const DefaultProductImage = "https://st4.depositphotos.com/14953852/24787/v/450/depositphotos_247872612-stock-illustration-no-image-available-icon-vector.jpg"

// SkuDetail is a purchasable variant of a product. SkuCode groups the variants
// added in a single call; StripePriceID points at the immutable remote price.
type SkuDetail struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SkuName       string             `bson:"sku_name" json:"skuName"`
	Price         float64            `bson:"price" json:"price"`
	Validity      int                `bson:"validity" json:"validity"` // days; ignored when Lifetime
	Lifetime      bool               `bson:"lifetime" json:"lifetime"`
	StripePriceID string             `bson:"stripe_price_id,omitempty" json:"stripePriceId"`
	SkuCode       string             `bson:"sku_code,omitempty" json:"skuCode"`
}

type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID   string             `bson:"customer_id" json:"customerId"`
	CustomerName string             `bson:"customer_name" json:"customerName"`
	Rating       int                `bson:"rating" json:"rating"`
	FeedbackMsg  string             `bson:"feedback_msg" json:"feedbackMsg"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

type ImageDetails struct {
	URL       string `bson:"url,omitempty" json:"url"`
	ObjectKey string `bson:"object_key,omitempty" json:"objectKey"`
}

type Product struct {
	ID                       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProductName              string              `bson:"product_name" json:"productName"`
	Description              string              `bson:"description" json:"description"`
	Image                    string              `bson:"image,omitempty" json:"image"`
	ImageDetails             ImageDetails        `bson:"image_details,omitempty" json:"imageDetails"`
	Category                 CategoryType        `bson:"category" json:"category"`
	PlatformType             PlatformType        `bson:"platform_type" json:"platformType"`
	BaseType                 BaseType            `bson:"base_type" json:"baseType"`
	ProductURL               string              `bson:"product_url" json:"productUrl"`
	DownloadURL              string              `bson:"download_url" json:"downloadUrl"`
	AvgRating                float64             `bson:"avg_rating" json:"avgRating"`
	FeedbackDetails          []Feedback          `bson:"feedback_details" json:"feedbackDetails"`
	SkuDetails               []SkuDetail         `bson:"sku_details" json:"skuDetails"`
	RequirementSpecification []map[string]string `bson:"requirement_specification,omitempty" json:"requirementSpecification"`
	Highlights               []string            `bson:"highlights,omitempty" json:"highlights"`
	StripeProductID          string              `bson:"stripe_product_id,omitempty" json:"stripeProductId"`
	CreatedAt                time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt                time.Time           `bson:"updated_at" json:"updatedAt"`
}

// FindSkuByID returns the embedded SKU with the given id, or nil.
func (p *Product) FindSkuByID(skuID primitive.ObjectID) *SkuDetail {
	for i := range p.SkuDetails {
		if p.SkuDetails[i].ID == skuID {
			return &p.SkuDetails[i]
		}
	}
	return nil
}

// FindSkuByCode returns the embedded SKU with the given sku code, or nil.
func (p *Product) FindSkuByCode(code string) *SkuDetail {
	for i := range p.SkuDetails {
		if p.SkuDetails[i].SkuCode == code {
			return &p.SkuDetails[i]
		}
	}
	return nil
}

// FindFeedbackByCustomer reports whether the customer already left feedback.
func (p *Product) FindFeedbackByCustomer(customerID string) *Feedback {
	for i := range p.FeedbackDetails {
		if p.FeedbackDetails[i].CustomerID == customerID {
			return &p.FeedbackDetails[i]
		}
	}
	return nil
}
